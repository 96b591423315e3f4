package profileserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jokobus/go_profile/internal/outreach"
	"github.com/jokobus/go_profile/internal/store"
)

// OutreachMessageInput is the input for outreach_message.
type OutreachMessageInput struct {
	ProfileID   string   `json:"profile_id,omitempty"` // empty = latest stored profile
	JobTitle    string   `json:"job_title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	MessageType string   `json:"message_type,omitempty"` // linkedin_connection, linkedin_message, email
	Tone        string   `json:"tone,omitempty"`         // professional, friendly, enthusiastic
	Keywords    []string `json:"keywords,omitempty"`
}

func registerOutreachMessage(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "outreach_message",
		Description: "Draft a personalized outreach message (LinkedIn connection request, LinkedIn message, or email) for a job opportunity, grounded in a stored unified profile. Supports tone control and keyword emphasis.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input OutreachMessageInput) (*mcp.CallToolResult, outreach.Result, error) {
		if input.JobTitle == "" || input.Company == "" {
			return nil, outreach.Result{}, fmt.Errorf("job_title and company are required")
		}

		db := store.GetProfileDB()
		if db == nil {
			return nil, outreach.Result{}, errors.New("profile store not configured (set DATABASE_URL)")
		}

		var sp *store.SavedProfile
		var err error
		if input.ProfileID != "" {
			sp, err = db.GetProfile(ctx, input.ProfileID)
		} else {
			sp, err = db.GetLatestProfile(ctx)
		}
		if err != nil {
			return nil, outreach.Result{}, fmt.Errorf("load profile: %w", err)
		}
		if sp == nil || sp.Profile == nil {
			return nil, outreach.Result{}, errors.New("no profile available; run profile_aggregate with save=true first")
		}

		result, err := outreach.Generate(ctx, sp.Profile, outreach.Request{
			JobTitle:    input.JobTitle,
			Company:     input.Company,
			Location:    input.Location,
			MessageType: input.MessageType,
			Tone:        input.Tone,
			Keywords:    input.Keywords,
		})
		if err != nil {
			return nil, outreach.Result{}, err
		}
		return nil, *result, nil
	})
}
