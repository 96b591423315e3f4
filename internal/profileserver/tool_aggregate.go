package profileserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/profile"
	"github.com/jokobus/go_profile/internal/sources"
	"github.com/jokobus/go_profile/internal/store"
)

// ProfileAggregateInput is the input for profile_aggregate. All sources are
// optional; the tool merges whatever is supplied.
type ProfileAggregateInput struct {
	ResumePDFB64   string `json:"resume_pdf_b64,omitempty"`
	LinkedInPDFB64 string `json:"linkedin_pdf_b64,omitempty"`
	GithubUsername string `json:"github_username,omitempty"`
	Save           bool   `json:"save,omitempty"`
}

// ProfileAggregateOutput is the aggregated profile plus run metadata.
type ProfileAggregateOutput struct {
	ProfileID    string                  `json:"profile_id,omitempty"`
	RunID        string                  `json:"run_id"`
	Profile      *profile.UnifiedProfile `json:"profile"`
	SourceErrors []string                `json:"source_errors,omitempty"`
}

func registerProfileAggregate(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_aggregate",
		Description: "Merge a resume PDF, a LinkedIn profile PDF export, and GitHub activity into one unified candidate profile with per-entity source provenance. All inputs are optional (base64-encoded PDFs, GitHub username); supplied sources are extracted concurrently and semantically deduplicated. Set save=true to persist the result.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ProfileAggregateInput) (*mcp.CallToolResult, ProfileAggregateOutput, error) {
		out, err := aggregateProfile(ctx, input)
		return nil, out, err
	})
}

func aggregateProfile(ctx context.Context, input ProfileAggregateInput) (ProfileAggregateOutput, error) {
	var resumePDF, linkedinPDF []byte
	var err error
	if input.ResumePDFB64 != "" {
		resumePDF, err = base64.StdEncoding.DecodeString(input.ResumePDFB64)
		if err != nil {
			return ProfileAggregateOutput{}, fmt.Errorf("resume_pdf_b64 is not valid base64: %w", err)
		}
	}
	if input.LinkedInPDFB64 != "" {
		linkedinPDF, err = base64.StdEncoding.DecodeString(input.LinkedInPDFB64)
		if err != nil {
			return ProfileAggregateOutput{}, fmt.Errorf("linkedin_pdf_b64 is not valid base64: %w", err)
		}
	}

	cacheKey := engine.CacheKey("profile_aggregate",
		string(resumePDF), string(linkedinPDF), input.GithubUsername)
	if out, ok := engine.CacheLoadJSON[ProfileAggregateOutput](ctx, cacheKey); ok {
		return out, nil
	}

	runID := uuid.NewString()
	start := time.Now()

	records, srcErrs := extractSources(ctx, resumePDF, linkedinPDF, input.GithubUsername)

	p, drops, err := profile.Aggregate(ctx, records)
	if err != nil {
		recordRun(ctx, runID, records, runStatusFor(err), 0, start, err.Error())
		return ProfileAggregateOutput{}, err
	}

	out := ProfileAggregateOutput{
		RunID:        runID,
		Profile:      p,
		SourceErrors: srcErrs,
	}

	if input.Save {
		if db := store.GetProfileDB(); db != nil {
			id, err := db.SaveProfile(ctx, p)
			if err != nil {
				slog.Warn("profile_aggregate: save failed", slog.Any("error", err))
			} else {
				out.ProfileID = id
			}
		} else {
			slog.Warn("profile_aggregate: save requested but DATABASE_URL not configured")
		}
	}

	recordRun(ctx, runID, records, store.RunOK, len(drops), start, "")

	// A degraded run (a source extractor failed) is never cached: retrying
	// the same inputs must re-extract, not replay the thinner profile.
	if len(srcErrs) == 0 {
		engine.CacheStoreJSON(ctx, cacheKey, out)
	}
	return out, nil
}

// extractSources runs the supplied adapters concurrently and joins on all
// of them. A failed extractor is absorbed: logged, counted, and reported in
// the returned messages, never fatal to the aggregation.
func extractSources(ctx context.Context, resumePDF, linkedinPDF []byte, githubUsername string) (profile.Records, []string) {
	type extraction struct {
		source profile.Source
		apply  func(*profile.Records)
		err    error
	}

	var launched int
	ch := make(chan extraction, 3)

	if len(resumePDF) > 0 {
		launched++
		go func() {
			rec, err := sources.ParseResume(ctx, resumePDF)
			ch <- extraction{
				source: profile.SourceResume,
				apply:  func(r *profile.Records) { r.Resume = rec },
				err:    err,
			}
		}()
	}
	if len(linkedinPDF) > 0 {
		launched++
		go func() {
			rec, err := sources.ParseLinkedIn(ctx, linkedinPDF)
			ch <- extraction{
				source: profile.SourceLinkedIn,
				apply:  func(r *profile.Records) { r.LinkedIn = rec },
				err:    err,
			}
		}()
	}
	if githubUsername != "" {
		launched++
		go func() {
			rec, err := sources.FetchGitHubProfile(ctx, githubUsername)
			ch <- extraction{
				source: profile.SourceGitHub,
				apply:  func(r *profile.Records) { r.GitHub = rec },
				err:    err,
			}
		}()
	}

	var records profile.Records
	var srcErrs []string
	for i := 0; i < launched; i++ {
		ex := <-ch
		if ex.err != nil {
			srcErr := &profile.SourceUnavailableError{Source: ex.source, Err: ex.err}
			slog.Warn("profile_aggregate: source unavailable",
				slog.String("source", string(ex.source)),
				slog.Any("error", ex.err))
			engine.IncrSourcesAbsent()
			srcErrs = append(srcErrs, srcErr.Error())
			continue
		}
		ex.apply(&records)
	}
	return records, srcErrs
}

func runStatusFor(err error) store.RunStatus {
	var sv *profile.SchemaViolationError
	if errors.As(err, &sv) {
		return store.RunSchemaViolation
	}
	return store.RunUpstreamError
}

func recordRun(ctx context.Context, runID string, r profile.Records, status store.RunStatus, dropped int, start time.Time, detail string) {
	supplied := r.Supplied()
	names := make([]string, 0, len(supplied))
	for _, s := range supplied {
		names = append(names, string(s))
	}
	err := store.RecordRun(ctx, store.AuditEntry{
		RunID:         runID,
		Sources:       strings.Join(names, ","),
		Status:        status,
		FieldsDropped: dropped,
		DurationMs:    time.Since(start).Milliseconds(),
		Detail:        engine.Truncate(detail, 500),
	})
	if err != nil {
		slog.Debug("profile_aggregate: audit write failed", slog.Any("error", err))
	}
}
