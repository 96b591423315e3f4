package profile

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleProfile() *UnifiedProfile {
	return &UnifiedProfile{
		ContactInfo: ContactInfo{Name: "Jane Doe"},
		SocialLinks: SocialLinks{
			LinkedIn:   "https://www.linkedin.com/in/janedoe",
			GitHub:     "not a url",
			OtherLinks: []string{"https://janedoe.dev", "janedoe.dev", "https://janedoe.dev"},
		},
		Education: []UnifiedEducation{
			{Institute: "MIT", StartYear: YearOf(2018), EndYear: YearOf(2022),
				Source: []Source{SourceResume, SourceLinkedIn}},
		},
		Experience: []UnifiedExperience{
			{Company: "Acme", Title: "Engineer", StartYear: YearOf(2022), EndYear: PresentYear(),
				Source: []Source{SourceLinkedIn}},
		},
		Projects: []UnifiedProject{
			{Name: "tool", Link: "https://github.com/janedoe/tool", Source: []Source{SourceGitHub}},
			{Name: "ghost", Source: []Source{SourceGitHub}},
		},
		Skills: []SkillCategory{
			{CategoryName: "Languages", Skills: []string{"Go", "go", " Go ", "Python"}, Source: []Source{SourceResume}},
		},
		DataSources: []Source{SourceResume, SourceLinkedIn, SourceGitHub},
	}
}

func TestPostprocess_DropsMalformedURLs(t *testing.T) {
	p := sampleProfile()
	drops := Postprocess(p, []Source{SourceResume, SourceLinkedIn, SourceGitHub})

	if p.SocialLinks.GitHub != "" {
		t.Errorf("expected malformed github link dropped, got %q", p.SocialLinks.GitHub)
	}
	if p.SocialLinks.LinkedIn == "" {
		t.Error("expected valid linkedin link kept")
	}
	if got := p.SocialLinks.OtherLinks; !reflect.DeepEqual(got, []string{"https://janedoe.dev"}) {
		t.Errorf("other_links = %v, want single valid deduped URL", got)
	}

	var found bool
	for _, d := range drops {
		if d.FieldPath == "social_links.github" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a drop for social_links.github, got %v", drops)
	}
}

func TestPostprocess_ClampsProvenance(t *testing.T) {
	p := sampleProfile()
	// GitHub was not supplied: its entities must disappear, and every
	// remaining source list must be a subset of {resume, linkedin}.
	Postprocess(p, []Source{SourceResume, SourceLinkedIn})

	if len(p.Projects) != 0 {
		t.Errorf("expected github-only projects dropped, got %v", p.Projects)
	}
	if got := p.Education[0].Source; !reflect.DeepEqual(got, []Source{SourceResume, SourceLinkedIn}) {
		t.Errorf("education source = %v", got)
	}
	if got := p.DataSources; !reflect.DeepEqual(got, []Source{SourceResume, SourceLinkedIn}) {
		t.Errorf("data_sources = %v, want [resume linkedin]", got)
	}
}

func TestPostprocess_ProvenanceCanonicalOrder(t *testing.T) {
	p := &UnifiedProfile{
		ContactInfo: ContactInfo{Name: "X"},
		Education: []UnifiedEducation{
			{Institute: "A", Source: []Source{SourceLinkedIn, SourceResume, SourceResume}},
		},
	}
	Postprocess(p, []Source{SourceLinkedIn, SourceResume})

	if got := p.Education[0].Source; !reflect.DeepEqual(got, []Source{SourceResume, SourceLinkedIn}) {
		t.Errorf("source = %v, want canonical order with duplicates removed", got)
	}
}

func TestPostprocess_SkillDedup(t *testing.T) {
	p := sampleProfile()
	Postprocess(p, []Source{SourceResume, SourceLinkedIn, SourceGitHub})

	if got := p.Skills[0].Skills; !reflect.DeepEqual(got, []string{"Go", "Python"}) {
		t.Errorf("skills = %v, want first spelling kept", got)
	}
}

func TestPostprocess_Idempotent(t *testing.T) {
	supplied := []Source{SourceResume, SourceLinkedIn, SourceGitHub}

	p := sampleProfile()
	Postprocess(p, supplied)
	first, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	drops := Postprocess(p, supplied)
	second, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("second pass changed output:\n%s\n%s", first, second)
	}
	if len(drops) != 0 {
		t.Errorf("second pass reported drops: %v", drops)
	}
}

func TestPostprocess_EnsuresCollections(t *testing.T) {
	p := &UnifiedProfile{ContactInfo: ContactInfo{Name: "X"}}
	Postprocess(p, nil)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"education":[]`, `"skills":[]`, `"data_sources":[]`, `"courses":[]`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized profile missing %s: %s", key, data)
		}
	}
}

func TestDataSourcesFor(t *testing.T) {
	tests := []struct {
		name     string
		supplied []Source
		want     []Source
	}{
		{"none", nil, []Source{}},
		{"one", []Source{SourceGitHub}, []Source{SourceGitHub}},
		{"reordered", []Source{SourceGitHub, SourceResume}, []Source{SourceResume, SourceGitHub}},
		{"unknown ignored", []Source{"stackoverflow", SourceLinkedIn}, []Source{SourceLinkedIn}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DataSourcesFor(tt.supplied); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DataSourcesFor(%v) = %v, want %v", tt.supplied, got, tt.want)
			}
		})
	}
}
