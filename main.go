// go_profile is a multi-source candidate profile aggregation MCP server.
//
// Merges resume PDFs, LinkedIn profile exports, and GitHub activity into a
// single unified profile with per-entity source provenance. Exposes four
// MCP tools: profile_aggregate, profile_get, github_profile,
// outreach_message. Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/profileserver"
	"github.com/jokobus/go_profile/internal/store"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_profile",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_profile",
		Version: version,
	}, nil)

	profileserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_profile",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:           env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 16384),

		OracleTimeout:  env.Duration("ORACLE_TIMEOUT", 120*time.Second),
		OracleRetries:  env.Int("ORACLE_RETRIES", 3),
		OracleRPS:      env.Float("ORACLE_RPS", 1),
		MaxPromptChars: env.Int("MAX_PROMPT_CHARS", 20000),

		GithubToken:  env.Str("GITHUB_TOKEN", ""),
		GithubRPS:    env.Float("GITHUB_RPS", 5),
		FetchTimeout: env.Duration("FETCH_TIMEOUT", 10*time.Second),

		DatabaseURL: env.Str("DATABASE_URL", ""),
		AuditDBPath: env.Str("AUDIT_DB_PATH", ""),

		RedisURL:             env.Str("REDIS_URL", ""),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),

		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)

	engine.Init(c)
	engine.InitCache(c.RedisURL, engine.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	store.SetAuditPath(c.AuditDBPath)

	// Profile store (PostgreSQL)
	if c.DatabaseURL != "" {
		db, err := store.ConnectProfileDB(context.Background(), c.DatabaseURL)
		if err != nil {
			slog.Warn("profile DB init failed", slog.Any("error", err))
		} else {
			store.SetProfileDB(db)
			slog.Info("profile DB initialized")
		}
	}
}
