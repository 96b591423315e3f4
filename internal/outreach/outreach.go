// Package outreach generates personalized recruiter-contact messages from
// an aggregated profile.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/profile"
)

// Message types.
const (
	TypeLinkedInConnection = "linkedin_connection"
	TypeLinkedInMessage    = "linkedin_message"
	TypeEmail              = "email"
)

// connectionNoteLimit is LinkedIn's character cap on connection requests.
const connectionNoteLimit = 300

// Request describes one outreach message to generate.
type Request struct {
	JobTitle    string
	Company     string
	Location    string
	MessageType string // linkedin_connection, linkedin_message, email
	Tone        string // professional, friendly, enthusiastic
	Keywords    []string
}

// Result is the generated message plus personalization tips.
type Result struct {
	MessageType  string   `json:"message_type"`
	Tone         string   `json:"tone"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	ShortVersion string   `json:"short_version,omitempty"`
	Tips         []string `json:"tips"`
}

const connectionPrompt = `Create a SHORT and PERSONAL LinkedIn connection request message.

STRICT REQUIREMENTS:
- Maximum %d characters (LinkedIn limit)
- Mention ONE specific common interest or relevant skill
- Reference the company: %s
- Use a %s tone
- Be genuine and specific, not generic

CANDIDATE INFO:
%s

JOB INFO:
Title: %s
Company: %s
Location: %s

Return a JSON object with this exact structure:
{
  "subject": "Short connection note/reason",
  "body": "The actual connection request message (under %d chars)",
  "tips": ["personalization tip 1", "personalization tip 2"]
}

Return ONLY the JSON object, no markdown, no explanation.`

const messagePrompt = `Create a personalized LinkedIn InMail or direct message.

REQUIREMENTS:
- Maximum 2000 characters
- Clear expression of interest in the role
- Highlight 2-3 relevant skills/experiences
- Include a call-to-action
- Use a %s tone
- Be authentic and specific

CANDIDATE INFO:
%s

JOB INFO:
Title: %s
Company: %s
Location: %s
%s
Return a JSON object with this exact structure:
{
  "subject": "Message subject/opening",
  "body": "The full message",
  "tips": ["personalization tip 1", "personalization tip 2", "personalization tip 3"]
}

Return ONLY the JSON object, no markdown, no explanation.`

const emailPrompt = `Create a professional email for a job opportunity.

REQUIREMENTS:
- Professional email format with greeting and signature
- Clear subject line
- Express genuine interest and relevant qualifications
- Highlight 3-4 key skills/experiences that match the role
- Include availability for discussion
- Use a %s tone

CANDIDATE INFO:
%s

JOB INFO:
Title: %s
Company: %s
Location: %s
%s
Return a JSON object with this exact structure:
{
  "subject": "Professional email subject line",
  "body": "The complete email body with greeting and closing",
  "tips": ["personalization tip 1", "personalization tip 2", "personalization tip 3"]
}

Return ONLY the JSON object, no markdown, no explanation.`

// Generate builds one outreach message grounded in the candidate's profile.
// Unknown message types default to email; unknown tones to professional.
func Generate(ctx context.Context, p *profile.UnifiedProfile, req Request) (*Result, error) {
	engine.IncrOutreachRequests()

	msgType := normalizeType(req.MessageType)
	tone := normalizeTone(req.Tone)
	candidate := candidateContext(p, msgType)

	var prompt string
	switch msgType {
	case TypeLinkedInConnection:
		prompt = fmt.Sprintf(connectionPrompt,
			connectionNoteLimit, req.Company, tone, candidate,
			req.JobTitle, req.Company, req.Location, connectionNoteLimit)
	case TypeLinkedInMessage:
		prompt = fmt.Sprintf(messagePrompt,
			tone, candidate, req.JobTitle, req.Company, req.Location, keywordLine("Key Skills Needed", req.Keywords))
	default:
		prompt = fmt.Sprintf(emailPrompt,
			tone, candidate, req.JobTitle, req.Company, req.Location, keywordLine("Key Requirements", req.Keywords))
	}

	raw, err := engine.CallLLM(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("outreach LLM: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("outreach parse: %w (raw: %s)", err, engine.TruncateRunes(raw, 200, "..."))
	}

	result.MessageType = msgType
	result.Tone = tone
	if msgType == TypeLinkedInConnection {
		result.ShortVersion = engine.TruncateRunes(result.Body, connectionNoteLimit, "...")
	}
	return &result, nil
}

func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case TypeLinkedInConnection, "connection":
		return TypeLinkedInConnection
	case TypeLinkedInMessage, "inmail", "message":
		return TypeLinkedInMessage
	default:
		return TypeEmail
	}
}

func normalizeTone(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "friendly":
		return "friendly"
	case "enthusiastic":
		return "enthusiastic"
	default:
		return "professional"
	}
}

// candidateContext flattens the profile into the few lines of candidate
// info each message type needs. Skill counts scale with message length.
func candidateContext(p *profile.UnifiedProfile, msgType string) string {
	skillLimit := 7
	switch msgType {
	case TypeLinkedInConnection:
		skillLimit = 3
	case TypeLinkedInMessage:
		skillLimit = 5
	}

	var skills []string
	for _, group := range p.Skills {
		for _, s := range group.Skills {
			if len(skills) >= skillLimit {
				break
			}
			skills = append(skills, s)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.ContactInfo.Name)
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Top Skills: %s\n", strings.Join(skills, ", "))
	} else {
		b.WriteString("Top Skills: Not specified\n")
	}
	if len(p.Experience) > 0 {
		exp := p.Experience[0]
		fmt.Fprintf(&b, "Recent Experience: %s at %s\n", exp.Title, exp.Company)
	}
	return strings.TrimRight(b.String(), "\n")
}

func keywordLine(label string, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s\n", label, strings.Join(keywords, ", "))
}
