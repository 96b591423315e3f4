package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/jokobus/go_profile/internal/engine"
)

// githubAPIBase is a var so tests can point the adapter at a local server.
var githubAPIBase = "https://api.github.com"

type ghUser struct {
	Login    string `json:"login"`
	HTMLURL  string `json:"html_url"`
	ReposURL string `json:"repos_url"`
	Blog     string `json:"blog"`
}

type ghRepo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	HTMLURL      string `json:"html_url"`
	Fork         bool   `json:"fork"`
	Stars        int    `json:"stargazers_count"`
	Forks        int    `json:"forks_count"`
	Language     string `json:"language"`
	LanguagesURL string `json:"languages_url"`
}

// FetchGitHubProfile maps a GitHub account to a source record: one project
// per non-fork repository plus one skill group of languages ranked by total
// bytes across those repositories.
func FetchGitHubProfile(ctx context.Context, username string) (*GitHubRecord, error) {
	engine.IncrGithubRequests()

	user, err := githubGet[ghUser](ctx, fmt.Sprintf("%s/users/%s", githubAPIBase, username))
	if err != nil {
		return nil, fmt.Errorf("github user %s: %w", username, err)
	}

	rec := &GitHubRecord{
		Username:   user.Login,
		ProfileURL: user.HTMLURL,
	}
	if user.HTMLURL != "" {
		rec.SocialLinks = append(rec.SocialLinks, user.HTMLURL)
	}

	repos, err := githubGet[[]ghRepo](ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100", githubAPIBase, username))
	if err != nil {
		return nil, fmt.Errorf("github repos for %s: %w", username, err)
	}

	languageBytes := make(map[string]int64)
	for _, repo := range *repos {
		if repo.Fork {
			continue
		}

		var descPoints []string
		if repo.Description != "" {
			descPoints = []string{repo.Description}
		}
		proj := GitHubProject{
			Name:              repo.Name,
			DescriptionPoints: descPoints,
			Link:              repo.HTMLURL,
			Stars:             repo.Stars,
			Forks:             repo.Forks,
		}
		if repo.Language != "" {
			proj.Technologies = []string{repo.Language}
		}
		rec.Projects = append(rec.Projects, proj)

		if repo.LanguagesURL == "" {
			continue
		}
		langs, err := githubGet[map[string]int64](ctx, repo.LanguagesURL)
		if err != nil {
			// Language breakdown is best-effort per repo.
			slog.Debug("github languages fetch failed",
				slog.String("repo", repo.Name), slog.Any("error", err))
			continue
		}
		for lang, bytes := range *langs {
			languageBytes[lang] += bytes
		}
	}

	if len(languageBytes) > 0 {
		rec.Skills = append(rec.Skills, SkillGroup{
			CategoryName: "Programming Languages (from GitHub)",
			Skills:       rankLanguages(languageBytes),
		})
	}

	slog.Info("github profile fetched",
		slog.String("username", rec.Username),
		slog.Int("projects", len(rec.Projects)),
		slog.Int("languages", len(languageBytes)))

	return rec, nil
}

// rankLanguages orders languages by total bytes descending, name ascending
// on ties, so the same repository set always yields the same ordering.
func rankLanguages(byBytes map[string]int64) []string {
	names := make([]string, 0, len(byBytes))
	for lang := range byBytes {
		names = append(names, lang)
	}
	sort.Slice(names, func(i, j int) bool {
		if byBytes[names[i]] != byBytes[names[j]] {
			return byBytes[names[i]] > byBytes[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// githubGet fetches and decodes one GitHub REST endpoint with retries.
func githubGet[T any](ctx context.Context, url string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	if err := engine.GithubWait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", engine.UserAgentBot)
	if engine.Cfg.GithubToken != "" {
		req.Header.Set("Authorization", "Bearer "+engine.Cfg.GithubToken)
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API status %d for %s", resp.StatusCode, url)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
