package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// Completer is the narrow boundary to the semantic-merge oracle: a text
// prompt in, structured text out. *llm.Client satisfies it; tests and a
// future deterministic matcher substitute their own implementation.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, opts ...llm.ChatOption) (string, error)
}

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int

	OracleTimeout  time.Duration // per-call deadline on the merge oracle
	OracleRetries  int           // bounded transient-failure retries on oracle calls
	OracleRPS      float64       // outbound oracle rate limit (0 = unlimited)
	MaxPromptChars int           // per-source serialization cap in merge prompts

	GithubToken  string
	GithubRPS    float64 // outbound GitHub API rate limit (0 = unlimited)
	FetchTimeout time.Duration

	DatabaseURL string // Postgres profile store (empty = persistence disabled)
	AuditDBPath string // SQLite aggregation audit log path

	RedisURL             string
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	LLMClient  Completer
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (profile, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// oracleLimiter gates outbound oracle calls; nil means unlimited.
var oracleLimiter *rate.Limiter

// githubLimiter gates outbound GitHub API calls; nil means unlimited.
var githubLimiter *rate.Limiter

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	oracleLimiter = nil
	if c.OracleRPS > 0 {
		oracleLimiter = rate.NewLimiter(rate.Limit(c.OracleRPS), 1)
	}
	githubLimiter = nil
	if c.GithubRPS > 0 {
		githubLimiter = rate.NewLimiter(rate.Limit(c.GithubRPS), int(c.GithubRPS)+1)
	}
}

// GithubWait blocks until the GitHub rate limiter admits one call.
func GithubWait(ctx context.Context) error {
	if githubLimiter == nil {
		return nil
	}
	return githubLimiter.Wait(ctx)
}
