package profileserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jokobus/go_profile/internal/store"
)

// ProfileGetInput selects a stored profile. Empty ID means latest.
type ProfileGetInput struct {
	ID    string `json:"id,omitempty"`
	List  bool   `json:"list,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// ProfileGetOutput is either one stored profile or a listing of headers.
type ProfileGetOutput struct {
	Profile  *store.SavedProfile  `json:"profile,omitempty"`
	Profiles []store.SavedProfile `json:"profiles,omitempty"`
	Total    int                  `json:"total,omitempty"`
}

func registerProfileGet(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_get",
		Description: "Fetch a stored unified profile by id, or the most recently aggregated one when id is omitted. Set list=true to get recent profile headers instead.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ProfileGetInput) (*mcp.CallToolResult, ProfileGetOutput, error) {
		db := store.GetProfileDB()
		if db == nil {
			return nil, ProfileGetOutput{}, errors.New("profile store not configured (set DATABASE_URL)")
		}

		if input.List {
			profiles, err := db.ListProfiles(ctx, input.Limit)
			if err != nil {
				return nil, ProfileGetOutput{}, fmt.Errorf("list profiles: %w", err)
			}
			return nil, ProfileGetOutput{Profiles: profiles, Total: len(profiles)}, nil
		}

		if input.ID != "" {
			sp, err := db.GetProfile(ctx, input.ID)
			if err != nil {
				return nil, ProfileGetOutput{}, fmt.Errorf("profile %s: %w", input.ID, err)
			}
			return nil, ProfileGetOutput{Profile: sp}, nil
		}

		sp, err := db.GetLatestProfile(ctx)
		if err != nil {
			return nil, ProfileGetOutput{}, fmt.Errorf("latest profile: %w", err)
		}
		if sp == nil {
			return nil, ProfileGetOutput{}, errors.New("no profiles stored yet")
		}
		return nil, ProfileGetOutput{Profile: sp}, nil
	})
}
