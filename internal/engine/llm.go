package engine

import (
	"context"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// StripFences removes markdown code fences from LLM output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt to the oracle using the configured temperature and
// max_tokens, with bounded backoff retries. Retries resend the identical
// prompt, so callers must only pass idempotent requests.
func CallLLM(ctx context.Context, prompt string, opts ...llm.ChatOption) (string, error) {
	if cfg.OracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.OracleTimeout)
		defer cancel()
	}

	rc := RetryConfig{
		MaxRetries:  max(cfg.OracleRetries, 0),
		InitialWait: 500 * time.Millisecond,
		MaxWait:     8 * time.Second,
		Multiplier:  2.0,
		// Every oracle failure is worth another attempt within the
		// configured bound; the client surfaces transport and API
		// errors alike and the request is idempotent.
		RetryIf: func(error) bool { return true },
	}

	return RetryDo(ctx, rc, func() (string, error) {
		if oracleLimiter != nil {
			if err := oracleLimiter.Wait(ctx); err != nil {
				return "", err
			}
		}
		IncrOracleCalls()
		resp, err := cfg.LLMClient.Complete(ctx, "", prompt, opts...)
		if err != nil {
			IncrOracleErrors()
			return "", err
		}
		return StripFences(resp), nil
	})
}

// CallLLMStructured sends a prompt expected to yield JSON, at temperature 0
// so repeated calls stay as close to deterministic as the model allows.
func CallLLMStructured(ctx context.Context, prompt string) (string, error) {
	return CallLLM(ctx, prompt, llm.WithChatTemperature(0))
}
