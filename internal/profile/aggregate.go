package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/sources"
)

// Records bundles the up-to-three source extractions for one aggregation
// request. A nil field means the source was absent (extractor failed or was
// not requested). Records are request-scoped and never shared.
type Records struct {
	Resume   *sources.ResumeRecord
	LinkedIn *sources.LinkedInRecord
	GitHub   *sources.GitHubRecord
}

// Supplied returns the sources with a non-nil record, in canonical order.
func (r Records) Supplied() []Source {
	var out []Source
	if r.Resume != nil {
		out = append(out, SourceResume)
	}
	if r.LinkedIn != nil {
		out = append(out, SourceLinkedIn)
	}
	if r.GitHub != nil {
		out = append(out, SourceGitHub)
	}
	return out
}

// BuildMergePrompt serializes the present records into the merge request
// sent to the oracle. Deterministic: identical records yield an identical
// prompt, which keeps oracle retries idempotent.
func BuildMergePrompt(r Records) (string, error) {
	resumeJSON, err := serializeRecord(r.Resume)
	if err != nil {
		return "", fmt.Errorf("serialize resume record: %w", err)
	}
	linkedinJSON, err := serializeRecord(r.LinkedIn)
	if err != nil {
		return "", fmt.Errorf("serialize linkedin record: %w", err)
	}
	githubJSON, err := serializeRecord(r.GitHub)
	if err != nil {
		return "", fmt.Errorf("serialize github record: %w", err)
	}
	return fmt.Sprintf(mergePrompt, SchemaJSON(), resumeJSON, linkedinJSON, githubJSON), nil
}

// serializeRecord renders a record as indented JSON, capped at the
// configured per-source prompt cap. rec must be a typed pointer; a nil
// interface-wrapped pointer still serializes as the absent placeholder.
func serializeRecord(rec any) (string, error) {
	switch v := rec.(type) {
	case *sources.ResumeRecord:
		if v == nil {
			return absentPlaceholder, nil
		}
	case *sources.LinkedInRecord:
		if v == nil {
			return absentPlaceholder, nil
		}
	case *sources.GitHubRecord:
		if v == nil {
			return absentPlaceholder, nil
		}
	case nil:
		return absentPlaceholder, nil
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	limit := engine.Cfg.MaxPromptChars
	if limit <= 0 {
		limit = 20000
	}
	return engine.TruncateRunes(string(data), limit, ""), nil
}

// Aggregate merges the supplied source records into one UnifiedProfile and
// reports the fields removed during post-processing.
//
// The semantic entity-matching is delegated to the configured oracle; this
// function owns everything around it: the merge request, strict schema
// validation of the response, and deterministic post-processing. Oracle
// failure surfaces as ErrUpstreamUnavailable, invalid output as
// *SchemaViolationError. A partial profile is never fabricated.
func Aggregate(ctx context.Context, r Records) (*UnifiedProfile, []FieldDrop, error) {
	engine.IncrAggregateRequests()

	supplied := r.Supplied()
	if len(supplied) == 0 {
		// Nothing to merge; not an error. All collections empty,
		// data_sources empty.
		p := Minimal("")
		p.LastUpdated = time.Now().UTC().Format(time.RFC3339)
		return p, nil, nil
	}

	prompt, err := BuildMergePrompt(r)
	if err != nil {
		return nil, nil, err
	}

	raw, err := engine.CallLLMStructured(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	p, err := Parse(raw)
	if err != nil {
		engine.IncrSchemaViolations()
		return nil, nil, err
	}

	drops := Postprocess(p, supplied)
	for _, d := range drops {
		slog.Debug("field dropped during post-processing",
			slog.String("field_path", d.FieldPath),
			slog.String("reason", d.Reason))
	}
	engine.AddFieldsDropped(len(drops))

	p.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	slog.Info("profile aggregated",
		slog.String("name", p.ContactInfo.Name),
		slog.Int("education", len(p.Education)),
		slog.Int("experience", len(p.Experience)),
		slog.Int("projects", len(p.Projects)),
		slog.Int("skills", len(p.Skills)),
		slog.Int("fields_dropped", len(drops)),
		slog.Any("data_sources", p.DataSources))

	return p, drops, nil
}
