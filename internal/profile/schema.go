// Package profile defines the canonical unified-profile schema and the
// aggregation engine that merges resume, LinkedIn and GitHub extractions
// into a single provenance-tagged profile.
package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Source identifies where a merged entity's data came from.
type Source string

const (
	SourceResume   Source = "resume"
	SourceLinkedIn Source = "linkedin"
	SourceGitHub   Source = "github"
)

// KnownSources lists all valid sources in canonical order.
var KnownSources = []Source{SourceResume, SourceLinkedIn, SourceGitHub}

// ValidSource reports whether s is one of the closed source set.
func ValidSource(s Source) bool {
	switch s {
	case SourceResume, SourceLinkedIn, SourceGitHub:
		return true
	}
	return false
}

// Year is a 4-digit year or the literal "Present".
// Marshals as a JSON number, or the string "Present".
type Year struct {
	Value   int
	Present bool
}

// PresentYear returns the "Present" sentinel.
func PresentYear() *Year { return &Year{Present: true} }

// YearOf returns a pointer to a concrete year.
func YearOf(v int) *Year { return &Year{Value: v} }

func (y Year) MarshalJSON() ([]byte, error) {
	if y.Present {
		return []byte(`"Present"`), nil
	}
	return []byte(strconv.Itoa(y.Value)), nil
}

func (y *Year) UnmarshalJSON(data []byte) error {
	if string(data) == `"Present"` {
		*y = Year{Present: true}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("year must be an integer or \"Present\": %w", err)
	}
	*y = Year{Value: v}
	return nil
}

// String renders the year the way it appears in JSON, without quotes.
func (y Year) String() string {
	if y.Present {
		return "Present"
	}
	return strconv.Itoa(y.Value)
}

// GradeType is the closed set of academic grade systems.
type GradeType string

const (
	GradeGPA        GradeType = "GPA"
	GradeCGPA       GradeType = "CGPA"
	GradePercentage GradeType = "PERCENTAGE"
	GradeMarks      GradeType = "MARKS"
	GradeOther      GradeType = "OTHER"
)

// Grade holds academic grade information.
type Grade struct {
	Value       float64   `json:"value"`
	Type        GradeType `json:"type"`
	Scale       float64   `json:"scale"`
	Description string    `json:"description,omitempty"`
}

// ContactInfo is the unified contact block. Name is the only field the
// whole profile structurally requires.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Headline string `json:"headline,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// SocialLinks holds validated absolute URLs. Malformed entries are dropped
// during post-processing, never surfaced.
type SocialLinks struct {
	LinkedIn   string   `json:"linkedin,omitempty"`
	GitHub     string   `json:"github,omitempty"`
	Portfolio  string   `json:"portfolio,omitempty"`
	OtherLinks []string `json:"other_links,omitempty"`
}

// UnifiedEducation merges education entries from resume and LinkedIn.
// Raw date strings are preserved alongside normalized years.
type UnifiedEducation struct {
	Institute    string   `json:"institute"`
	Degree       string   `json:"degree,omitempty"`
	FieldOfStudy string   `json:"field_of_study,omitempty"`
	StartYear    *Year    `json:"start_year,omitempty"`
	EndYear      *Year    `json:"end_year,omitempty"`
	StartDateRaw string   `json:"start_date_raw,omitempty"`
	EndDateRaw   string   `json:"end_date_raw,omitempty"`
	GradeInfo    *Grade   `json:"grade_info,omitempty"`
	Description  string   `json:"description,omitempty"`
	Source       []Source `json:"source"`
}

// UnifiedExperience merges work experience from resume and LinkedIn.
type UnifiedExperience struct {
	Company           string   `json:"company"`
	Title             string   `json:"title"`
	StartYear         *Year    `json:"start_year,omitempty"`
	EndYear           *Year    `json:"end_year,omitempty"`
	StartDateRaw      string   `json:"start_date_raw,omitempty"`
	EndDateRaw        string   `json:"end_date_raw,omitempty"`
	DurationRaw       string   `json:"duration_raw,omitempty"`
	Location          string   `json:"location,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Source            []Source `json:"source"`
}

// UnifiedProject merges projects from all three sources.
type UnifiedProject struct {
	Name              string   `json:"name"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Link              string   `json:"link,omitempty"`
	StartDateRaw      string   `json:"start_date_raw,omitempty"`
	EndDateRaw        string   `json:"end_date_raw,omitempty"`
	AssociatedWith    string   `json:"associated_with,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
	GithubStars       *int     `json:"github_stars,omitempty"`
	GithubForks       *int     `json:"github_forks,omitempty"`
	IsGithubRepo      bool     `json:"is_github_repo"`
	Source            []Source `json:"source"`
}

// SkillCategory groups deduplicated skills under one category.
type SkillCategory struct {
	CategoryName string   `json:"category_name"`
	Skills       []string `json:"skills"`
	Source       []Source `json:"source"`
}

// UnifiedCertification merges certifications from resume and LinkedIn.
type UnifiedCertification struct {
	Name                string   `json:"name"`
	IssuingOrganization string   `json:"issuing_organization,omitempty"`
	IssueYear           *Year    `json:"issue_year,omitempty"`
	ExpirationYear      *Year    `json:"expiration_year,omitempty"`
	IssueDateRaw        string   `json:"issue_date_raw,omitempty"`
	ExpirationDateRaw   string   `json:"expiration_date_raw,omitempty"`
	CredentialID        string   `json:"credential_id,omitempty"`
	CredentialURL       string   `json:"credential_url,omitempty"`
	Source              []Source `json:"source"`
}

// PositionOfResponsibility is a leadership role outside formal employment.
type PositionOfResponsibility struct {
	Title             string   `json:"title"`
	Organization      string   `json:"organization"`
	StartYear         *Year    `json:"start_year,omitempty"`
	EndYear           *Year    `json:"end_year,omitempty"`
	StartDateRaw      string   `json:"start_date_raw,omitempty"`
	EndDateRaw        string   `json:"end_date_raw,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Source            []Source `json:"source"`
}

// UnifiedProfile is the canonical output of the aggregation engine.
// Everything except contact_info.name is optional: a profile built from
// GitHub alone has no education, and that is still a valid profile.
type UnifiedProfile struct {
	ContactInfo ContactInfo `json:"contact_info"`
	SocialLinks SocialLinks `json:"social_links"`

	Education      []UnifiedEducation     `json:"education"`
	Experience     []UnifiedExperience    `json:"experience"`
	Projects       []UnifiedProject       `json:"projects"`
	Skills         []SkillCategory        `json:"skills"`
	Certifications []UnifiedCertification `json:"certifications"`

	Achievements              []string                   `json:"achievements"`
	PositionsOfResponsibility []PositionOfResponsibility `json:"positions_of_responsibility"`
	Courses                   []string                   `json:"courses"`

	DataSources []Source `json:"data_sources"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

// Minimal returns the empty-but-valid profile used when no source yielded
// any data. All collections are non-nil so JSON output is stable.
func Minimal(name string) *UnifiedProfile {
	return &UnifiedProfile{
		ContactInfo:               ContactInfo{Name: name},
		Education:                 []UnifiedEducation{},
		Experience:                []UnifiedExperience{},
		Projects:                  []UnifiedProject{},
		Skills:                    []SkillCategory{},
		Certifications:            []UnifiedCertification{},
		Achievements:              []string{},
		PositionsOfResponsibility: []PositionOfResponsibility{},
		Courses:                   []string{},
		DataSources:               []Source{},
	}
}
