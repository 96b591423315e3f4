package profileserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/sources"
)

// GithubProfileInput is the input for github_profile.
type GithubProfileInput struct {
	Username string `json:"username"`
}

func registerGithubProfile(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "github_profile",
		Description: "Fetch a GitHub account as a source record: one project per non-fork repository (stars, forks, description, link) plus programming languages ranked by total bytes across those repositories. Useful for inspecting what profile_aggregate would merge from GitHub.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GithubProfileInput) (*mcp.CallToolResult, sources.GitHubRecord, error) {
		if input.Username == "" {
			return nil, sources.GitHubRecord{}, fmt.Errorf("username is required")
		}

		cacheKey := engine.CacheKey("github_profile", input.Username)
		if rec, ok := engine.CacheLoadJSON[sources.GitHubRecord](ctx, cacheKey); ok {
			return nil, rec, nil
		}

		rec, err := sources.FetchGitHubProfile(ctx, input.Username)
		if err != nil {
			return nil, sources.GitHubRecord{}, err
		}

		engine.CacheStoreJSON(ctx, cacheKey, *rec)
		return nil, *rec, nil
	})
}
