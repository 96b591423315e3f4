// Package sources holds the three source-record adapters (resume PDF,
// LinkedIn export PDF, GitHub REST) and their intermediate schemas. Each
// adapter returns either a fully-typed record or an explicit failure,
// never an ad hoc partially-typed structure.
package sources

// Grade mirrors the academic grade shape shared by resume and LinkedIn
// extractions.
type Grade struct {
	Value       float64 `json:"value"`
	Type        string  `json:"type"` // GPA, CGPA, PERCENTAGE, MARKS, OTHER
	Scale       float64 `json:"scale"`
	Description string  `json:"description,omitempty"`
}

// --- Resume record (source-shaped, pre-merge) ---

type ResumeEducation struct {
	Institute    string `json:"institute"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    any    `json:"start_year,omitempty"` // 4-digit int or "Present"
	EndYear      any    `json:"end_year,omitempty"`
	GradeInfo    *Grade `json:"grade_info,omitempty"`
}

type ResumeExperience struct {
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	StartYear         any      `json:"start_year,omitempty"`
	EndYear           any      `json:"end_year,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
}

type ResumeProject struct {
	Name              string   `json:"name"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Link              string   `json:"link,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
}

type SkillGroup struct {
	CategoryName string   `json:"category_name"`
	Skills       []string `json:"skills"`
}

type ResumeCertification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization,omitempty"`
	IssueYear           any    `json:"issue_year,omitempty"`
	ExpirationYear      any    `json:"expiration_year,omitempty"`
	CredentialID        string `json:"credential_id,omitempty"`
	CredentialURL       string `json:"credential_url,omitempty"`
}

type ResumePosition struct {
	Title             string   `json:"title"`
	Organization      string   `json:"organization"`
	StartYear         any      `json:"start_year,omitempty"`
	EndYear           any      `json:"end_year,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
}

// ResumeRecord is the structured extraction of a resume PDF.
type ResumeRecord struct {
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	SocialLinks []string `json:"social_links,omitempty"`
	Courses     []string `json:"courses,omitempty"`

	Education                 []ResumeEducation     `json:"education"`
	Experience                []ResumeExperience    `json:"experience,omitempty"`
	Projects                  []ResumeProject       `json:"projects,omitempty"`
	Skills                    []SkillGroup          `json:"skills,omitempty"`
	Certifications            []ResumeCertification `json:"certifications,omitempty"`
	Achievements              []string              `json:"achievements,omitempty"`
	PositionsOfResponsibility []ResumePosition      `json:"positions_of_responsibility,omitempty"`
}

// --- LinkedIn record ---

type LinkedInContact struct {
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	ProfileURL string   `json:"profile_url,omitempty"`
	OtherLinks []string `json:"other_links,omitempty"`
}

// LinkedInPosition carries month precision the resume usually lacks; the
// merge keeps the most specific date information available.
type LinkedInPosition struct {
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location,omitempty"`
	StartYear         any      `json:"start_year,omitempty"`
	EndYear           any      `json:"end_year,omitempty"`
	StartMonth        int      `json:"start_month,omitempty"`
	EndMonth          int      `json:"end_month,omitempty"`
	StartDateRaw      string   `json:"start_date_raw,omitempty"`
	EndDateRaw        string   `json:"end_date_raw,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
}

type LinkedInEducation struct {
	Institute    string `json:"institute"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    any    `json:"start_year,omitempty"`
	EndYear      any    `json:"end_year,omitempty"`
	GradeInfo    *Grade `json:"grade_info,omitempty"`
}

type LinkedInProject struct {
	Name              string   `json:"name"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Link              string   `json:"link,omitempty"`
}

type LinkedInPublication struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher,omitempty"`
	PublishYear any    `json:"publish_year,omitempty"`
	URL         string `json:"url,omitempty"`
}

type LinkedInVolunteer struct {
	Role              string   `json:"role"`
	Organization      string   `json:"organization"`
	StartYear         any      `json:"start_year,omitempty"`
	EndYear           any      `json:"end_year,omitempty"`
	DescriptionPoints []string `json:"description_points,omitempty"`
}

// LinkedInRecord is the structured extraction of a LinkedIn profile export.
type LinkedInRecord struct {
	Name     string          `json:"name"`
	Headline string          `json:"headline,omitempty"`
	Location string          `json:"location,omitempty"`
	Contact  LinkedInContact `json:"contact"`
	About    string          `json:"about,omitempty"`

	TopSkills      []string              `json:"top_skills,omitempty"`
	HonorsAwards   []string              `json:"honors_awards,omitempty"`
	Certifications []ResumeCertification `json:"certifications,omitempty"`
	Experience     []LinkedInPosition    `json:"experience,omitempty"`
	Education      []LinkedInEducation   `json:"education,omitempty"`
	Projects       []LinkedInProject     `json:"projects,omitempty"`
	Publications   []LinkedInPublication `json:"publications,omitempty"`
	Volunteer      []LinkedInVolunteer   `json:"volunteer_experience,omitempty"`
	Courses        []string              `json:"courses,omitempty"`
	Languages      []string              `json:"languages,omitempty"`
}

// --- GitHub record ---

// GitHubProject is one non-fork repository mapped to project shape.
type GitHubProject struct {
	Name              string   `json:"name"`
	DescriptionPoints []string `json:"description_points,omitempty"`
	Link              string   `json:"link"`
	Technologies      []string `json:"technologies,omitempty"`
	Stars             int      `json:"stars"`
	Forks             int      `json:"forks"`
}

// GitHubRecord is the structured extraction of a GitHub account: one
// project per non-fork repository plus one ranked language skill group.
type GitHubRecord struct {
	Username    string          `json:"username"`
	ProfileURL  string          `json:"profile_url,omitempty"`
	Projects    []GitHubProject `json:"projects"`
	Skills      []SkillGroup    `json:"skills,omitempty"`
	SocialLinks []string        `json:"social_links,omitempty"`
}
