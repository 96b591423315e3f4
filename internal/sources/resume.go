package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jokobus/go_profile/internal/engine"
)

const resumeParsePrompt = `You are an expert resume parser. Analyze the resume text below and produce a single valid JSON object with this exact structure:
{
  "name": "...",
  "email": "...",
  "phone": "...",
  "social_links": ["https://..."],
  "courses": ["..."],
  "education": [
    {"institute": "...", "degree": "...", "field_of_study": "...", "start_year": 2020, "end_year": 2024,
     "grade_info": {"value": 8.5, "type": "CGPA", "scale": 10, "description": ""}}
  ],
  "experience": [
    {"title": "...", "company": "...", "start_year": 2023, "end_year": "Present", "description_points": ["..."]}
  ],
  "projects": [
    {"name": "...", "description_points": ["..."], "link": "https://...", "technologies": ["Go", "PostgreSQL"]}
  ],
  "skills": [
    {"category_name": "Programming Languages", "skills": ["Go", "Python"]}
  ],
  "certifications": [
    {"name": "...", "issuing_organization": "...", "issue_year": 2023, "expiration_year": null, "credential_id": "", "credential_url": ""}
  ],
  "achievements": ["..."],
  "positions_of_responsibility": [
    {"title": "...", "organization": "...", "start_year": 2022, "end_year": 2023, "description_points": ["..."]}
  ]
}

Rules:
- Year fields are a four-digit integer (e.g. 2024) or the literal string "Present". Never a month name or a range.
- "name" and "education" are required. Look at the whole document; education often sits at the bottom.
- grade_info "type" is one of GPA, CGPA, PERCENTAGE, MARKS, OTHER. Omit grade_info entirely when no grade is stated.
- Group every skill into the "skills" list by category. Do not invent skills not present in the text.
- All URLs must be absolute URIs starting with a protocol. Prefer the link annotations listed after the text over visible display text.
- Break experience, project, and responsibility descriptions into bullet points.
- Omit fields with no data rather than inventing placeholders.

RESUME:
%s

Return ONLY the JSON object, no markdown, no explanation.`

// ParseResume extracts a structured ResumeRecord from resume PDF bytes.
// Extraction failures are the caller's to absorb; this adapter never
// fabricates a partial record.
func ParseResume(ctx context.Context, pdfBytes []byte) (*ResumeRecord, error) {
	engine.IncrResumeParses()

	text, err := ExtractPDFText(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("resume pdf: %w", err)
	}
	content := text
	if links := ExtractPDFLinks(pdfBytes); len(links) > 0 {
		content += "\nLinks:\n" + strings.Join(links, "\n")
	}

	prompt := fmt.Sprintf(resumeParsePrompt, engine.TruncateRunes(content, 12000, ""))
	raw, err := engine.CallLLMStructured(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("resume parse LLM: %w", err)
	}

	var rec ResumeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("resume parse: %w (raw: %s)", err, engine.TruncateRunes(raw, 200, "..."))
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("resume parse: no name extracted")
	}

	slog.Info("resume parsed",
		slog.String("name", rec.Name),
		slog.Int("education", len(rec.Education)),
		slog.Int("experience", len(rec.Experience)),
		slog.Int("projects", len(rec.Projects)),
		slog.Int("skill_groups", len(rec.Skills)))

	return &rec, nil
}
