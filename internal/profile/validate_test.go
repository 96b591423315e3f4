package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const validProfileJSON = `{
  "contact_info": {"name": "Jane Doe", "email": "jane@example.com"},
  "social_links": {"github": "https://github.com/janedoe"},
  "education": [
    {"institute": "MIT", "degree": "BSc", "start_year": 2018, "end_year": 2022,
     "grade_info": {"value": 3.8, "type": "GPA", "scale": 4},
     "source": ["resume", "linkedin"]}
  ],
  "experience": [
    {"company": "Acme", "title": "Engineer", "start_year": 2022, "end_year": "Present",
     "source": ["linkedin"]}
  ],
  "projects": [],
  "skills": [
    {"category_name": "Languages", "skills": ["Go"], "source": ["resume"]}
  ],
  "certifications": [],
  "achievements": [],
  "positions_of_responsibility": [],
  "courses": [],
  "data_sources": ["resume", "linkedin"]
}`

func TestParse_Valid(t *testing.T) {
	p, err := Parse(validProfileJSON)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if p.ContactInfo.Name != "Jane Doe" {
		t.Errorf("name = %q", p.ContactInfo.Name)
	}
	if got := p.Education[0].StartYear; got == nil || got.Value != 2018 {
		t.Errorf("start_year = %v, want 2018", got)
	}
	if got := p.Experience[0].EndYear; got == nil || !got.Present {
		t.Errorf("end_year = %v, want Present", got)
	}
	if p.Education[0].GradeInfo.Type != GradeGPA {
		t.Errorf("grade type = %q", p.Education[0].GradeInfo.Type)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the merged profile is: ..."},
		{"missing contact_info", `{"education": []}`},
		{"empty name", `{"contact_info": {"name": ""}}`},
		{"bad year", strings.Replace(validProfileJSON, "2018", `"June 2018"`, 1)},
		{"bad grade type", strings.Replace(validProfileJSON, `"GPA"`, `"LETTER"`, 1)},
		{"bad source", strings.Replace(validProfileJSON, `["linkedin"]`, `["crunchbase"]`, 1)},
		{"entity without provenance", `{"contact_info": {"name": "Jane"}, "education": [{"institute": "MIT"}]}`},
		{"entity with empty provenance", strings.Replace(validProfileJSON, `["resume", "linkedin"]}`, `[]}`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("expected schema violation")
			}
			var sv *SchemaViolationError
			if !errors.As(err, &sv) {
				t.Fatalf("error type %T, want *SchemaViolationError", err)
			}
			if sv.RawOutput != tt.raw {
				t.Error("violation should carry the raw output")
			}
			if sv.Detail == "" {
				t.Error("violation should carry a detail message")
			}
		})
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	p, err := Parse(validProfileJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	Postprocess(p, []Source{SourceResume, SourceLinkedIn})

	first, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// A serialized profile is itself schema-valid and decodes back to an
	// equal object, including the integer-or-Present year encoding.
	p2, err := Parse(string(first))
	if err != nil {
		t.Fatalf("re-parse of serialized profile: %v", err)
	}
	if !reflect.DeepEqual(p, p2) {
		t.Errorf("round trip changed the profile:\nbefore: %+v\nafter:  %+v", p, p2)
	}

	second, err := json.Marshal(p2)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the JSON:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestYear_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Year
	}{
		{"integer", "2024", Year{Value: 2024}},
		{"present", `"Present"`, Year{Present: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Year
			if err := json.Unmarshal([]byte(tt.in), &y); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if y != tt.want {
				t.Errorf("got %+v, want %+v", y, tt.want)
			}
			out, err := json.Marshal(y)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("round trip %q -> %q", tt.in, out)
			}
		})
	}

	var y Year
	if err := json.Unmarshal([]byte(`"June 2024"`), &y); err == nil {
		t.Error("expected error for non-year string")
	}
}
