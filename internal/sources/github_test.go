package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/jokobus/go_profile/internal/engine"
)

func newGithubStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/users/janedoe", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"login": "janedoe", "html_url": "https://github.com/janedoe", "repos_url": "%s/users/janedoe/repos"}`, srv.URL)
	})
	mux.HandleFunc("/users/janedoe/repos", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `[
			{"name": "tool", "description": "a tool", "html_url": "https://github.com/janedoe/tool",
			 "fork": false, "stargazers_count": 12, "forks_count": 3, "language": "Go",
			 "languages_url": "%[1]s/langs/tool"},
			{"name": "copied", "fork": true, "languages_url": "%[1]s/langs/copied"},
			{"name": "lab", "html_url": "https://github.com/janedoe/lab",
			 "fork": false, "language": "Rust", "languages_url": "%[1]s/langs/lab"}
		]`, srv.URL)
	})
	mux.HandleFunc("/langs/tool", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"Go": 100, "Python": 50}`)
	})
	mux.HandleFunc("/langs/lab", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"Go": 30, "Rust": 130}`)
	})
	mux.HandleFunc("/langs/copied", func(w http.ResponseWriter, _ *http.Request) {
		t.Error("languages of a forked repo must not be fetched")
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchGitHubProfile(t *testing.T) {
	srv := newGithubStub(t)
	engine.Init(engine.Config{HTTPClient: srv.Client(), FetchTimeout: 5 * time.Second})
	prev := githubAPIBase
	githubAPIBase = srv.URL
	defer func() { githubAPIBase = prev }()

	rec, err := FetchGitHubProfile(context.Background(), "janedoe")
	if err != nil {
		t.Fatalf("FetchGitHubProfile: %v", err)
	}

	if rec.Username != "janedoe" {
		t.Errorf("username = %q, want janedoe", rec.Username)
	}
	if rec.ProfileURL != "https://github.com/janedoe" {
		t.Errorf("profile url = %q", rec.ProfileURL)
	}

	// The fork is excluded, leaving two projects in repo order.
	if len(rec.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(rec.Projects))
	}
	if rec.Projects[0].Name != "tool" || rec.Projects[1].Name != "lab" {
		t.Errorf("project names = %q, %q", rec.Projects[0].Name, rec.Projects[1].Name)
	}
	if rec.Projects[0].Stars != 12 || rec.Projects[0].Forks != 3 {
		t.Errorf("tool stars/forks = %d/%d", rec.Projects[0].Stars, rec.Projects[0].Forks)
	}
	if got := rec.Projects[0].DescriptionPoints; len(got) != 1 || got[0] != "a tool" {
		t.Errorf("tool description points = %v", got)
	}

	// Go and Rust tie at 130 bytes, so names break the tie alphabetically.
	if len(rec.Skills) != 1 {
		t.Fatalf("got %d skill groups, want 1", len(rec.Skills))
	}
	if rec.Skills[0].CategoryName != "Programming Languages (from GitHub)" {
		t.Errorf("category = %q", rec.Skills[0].CategoryName)
	}
	wantLangs := []string{"Go", "Rust", "Python"}
	if !reflect.DeepEqual(rec.Skills[0].Skills, wantLangs) {
		t.Errorf("languages = %v, want %v", rec.Skills[0].Skills, wantLangs)
	}
}

func TestFetchGitHubProfile_UserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	engine.Init(engine.Config{HTTPClient: srv.Client(), FetchTimeout: 5 * time.Second})
	prev := githubAPIBase
	githubAPIBase = srv.URL
	defer func() { githubAPIBase = prev }()

	if _, err := FetchGitHubProfile(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestRankLanguages(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]int64
		want []string
	}{
		{"empty", map[string]int64{}, []string{}},
		{"by bytes", map[string]int64{"Go": 10, "Rust": 30, "C": 20}, []string{"Rust", "C", "Go"}},
		{"tie breaks by name", map[string]int64{"Zig": 10, "Ada": 10}, []string{"Ada", "Zig"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rankLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rankLanguages(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
