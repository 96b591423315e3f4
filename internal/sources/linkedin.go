package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jokobus/go_profile/internal/engine"
)

const linkedinParsePrompt = `You are an expert LinkedIn profile parser. Analyze the exported LinkedIn profile text below and produce a single valid JSON object with this exact structure:
{
  "name": "...",
  "headline": "...",
  "location": "...",
  "contact": {"email": "...", "phone": "...", "address": "...", "profile_url": "https://www.linkedin.com/in/...", "other_links": ["https://..."]},
  "about": "...",
  "top_skills": ["..."],
  "honors_awards": ["..."],
  "certifications": [
    {"name": "...", "issuing_organization": "...", "issue_year": 2023, "expiration_year": null, "credential_id": "", "credential_url": ""}
  ],
  "experience": [
    {"title": "...", "company": "...", "location": "...", "start_year": 2022, "end_year": "Present",
     "start_month": 6, "end_month": 0, "start_date_raw": "Jun 2022", "end_date_raw": "Present",
     "description_points": ["..."]}
  ],
  "education": [
    {"institute": "...", "degree": "...", "field_of_study": "...", "start_year": 2018, "end_year": 2022,
     "grade_info": {"value": 3.8, "type": "GPA", "scale": 4, "description": ""}}
  ],
  "projects": [
    {"name": "...", "description_points": ["..."], "link": "https://..."}
  ],
  "publications": [
    {"title": "...", "publisher": "...", "publish_year": 2023, "url": "https://..."}
  ],
  "volunteer_experience": [
    {"role": "...", "organization": "...", "start_year": 2021, "end_year": 2022, "description_points": ["..."]}
  ],
  "courses": ["..."],
  "languages": ["..."]
}

Rules:
- Year fields are a four-digit integer (e.g. 2024) or the literal string "Present". Months are integers 1-12; use 0 when unknown. Keep the original date spelling in start_date_raw/end_date_raw.
- "name" and "education" are required.
- Include every top skill in "top_skills" and every honor or award in "honors_awards".
- All URLs must be absolute URIs starting with a protocol.
- Break experience, project, certification, volunteer, and publication descriptions into bullet points.
- Omit optional fields with no data rather than inventing placeholders.

LINKEDIN PROFILE:
%s

Return ONLY the JSON object, no markdown, no explanation.`

// ParseLinkedIn extracts a structured LinkedInRecord from a LinkedIn
// profile PDF export ("Save to PDF" on the profile page).
func ParseLinkedIn(ctx context.Context, pdfBytes []byte) (*LinkedInRecord, error) {
	engine.IncrLinkedInParses()

	text, err := ExtractPDFText(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("linkedin pdf: %w", err)
	}
	content := text
	if links := ExtractPDFLinks(pdfBytes); len(links) > 0 {
		content += "\nLinks:\n" + strings.Join(links, "\n")
	}

	prompt := fmt.Sprintf(linkedinParsePrompt, engine.TruncateRunes(content, 12000, ""))
	raw, err := engine.CallLLMStructured(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("linkedin parse LLM: %w", err)
	}

	var rec LinkedInRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("linkedin parse: %w (raw: %s)", err, engine.TruncateRunes(raw, 200, "..."))
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("linkedin parse: no name extracted")
	}

	slog.Info("linkedin profile parsed",
		slog.String("name", rec.Name),
		slog.Int("experience", len(rec.Experience)),
		slog.Int("education", len(rec.Education)),
		slog.Int("top_skills", len(rec.TopSkills)))

	return &rec, nil
}
