package profile

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Postprocess normalizes a schema-valid profile in place: validates every
// URL-typed field (dropping malformed values), clamps provenance lists to
// the sources actually supplied, deduplicates skills, and recomputes
// data_sources mechanically. It is deterministic and idempotent: running it
// twice over the same input yields byte-identical JSON.
//
// Returns the list of non-fatal field drops for logging.
func Postprocess(p *UnifiedProfile, supplied []Source) []FieldDrop {
	var drops []FieldDrop
	drop := func(path, reason string) {
		drops = append(drops, FieldDrop{FieldPath: path, Reason: reason})
	}

	allowed := mapset.NewThreadUnsafeSet[Source]()
	for _, s := range supplied {
		if ValidSource(s) {
			allowed.Add(s)
		}
	}

	// URL fields: drop, never fail.
	p.SocialLinks.LinkedIn = checkURL(p.SocialLinks.LinkedIn, "social_links.linkedin", drop)
	p.SocialLinks.GitHub = checkURL(p.SocialLinks.GitHub, "social_links.github", drop)
	p.SocialLinks.Portfolio = checkURL(p.SocialLinks.Portfolio, "social_links.portfolio", drop)
	p.SocialLinks.OtherLinks = filterURLs(p.SocialLinks.OtherLinks, "social_links.other_links", drop)

	for i := range p.Projects {
		p.Projects[i].Link = checkURL(p.Projects[i].Link, fmt.Sprintf("projects[%d].link", i), drop)
	}
	for i := range p.Certifications {
		p.Certifications[i].CredentialURL = checkURL(p.Certifications[i].CredentialURL,
			fmt.Sprintf("certifications[%d].credential_url", i), drop)
	}

	// Provenance: every source list becomes a deduplicated subset of the
	// supplied sources, in canonical order. An entity whose claimed
	// provenance lies entirely outside the supplied set is untrustworthy
	// and is dropped whole.
	p.Education = clampEntities(p.Education, allowed, "education",
		func(e *UnifiedEducation) *[]Source { return &e.Source }, drop)
	p.Experience = clampEntities(p.Experience, allowed, "experience",
		func(e *UnifiedExperience) *[]Source { return &e.Source }, drop)
	p.Projects = clampEntities(p.Projects, allowed, "projects",
		func(e *UnifiedProject) *[]Source { return &e.Source }, drop)
	p.Skills = clampEntities(p.Skills, allowed, "skills",
		func(e *SkillCategory) *[]Source { return &e.Source }, drop)
	p.Certifications = clampEntities(p.Certifications, allowed, "certifications",
		func(e *UnifiedCertification) *[]Source { return &e.Source }, drop)
	p.PositionsOfResponsibility = clampEntities(p.PositionsOfResponsibility, allowed, "positions_of_responsibility",
		func(e *PositionOfResponsibility) *[]Source { return &e.Source }, drop)

	// Skills: case/whitespace dedup within each category, first spelling wins.
	for i := range p.Skills {
		p.Skills[i].Skills = dedupeStrings(p.Skills[i].Skills)
	}

	// data_sources is mechanically derivable; never trust the oracle's claim.
	p.DataSources = clampSources(KnownSources, allowed)

	ensureCollections(p)
	return drops
}

// DataSourcesFor returns the canonical data_sources value for a supplied
// source set, independent of any oracle output.
func DataSourcesFor(supplied []Source) []Source {
	allowed := mapset.NewThreadUnsafeSet[Source]()
	for _, s := range supplied {
		if ValidSource(s) {
			allowed.Add(s)
		}
	}
	return clampSources(KnownSources, allowed)
}

// checkURL returns s if it is a well-formed absolute URL, else "".
func checkURL(s, path string, drop func(path, reason string)) string {
	if s == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() || u.Host == "" {
		drop(path, fmt.Sprintf("malformed URL %q", s))
		return ""
	}
	return u.String()
}

// filterURLs keeps only valid, unique absolute URLs, preserving order.
func filterURLs(links []string, path string, drop func(path, reason string)) []string {
	if len(links) == 0 {
		return links
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	out := links[:0]
	for i, l := range links {
		v := checkURL(l, fmt.Sprintf("%s[%d]", path, i), drop)
		if v == "" || !seen.Add(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// clampSources intersects ordered with allowed, preserving canonical order.
func clampSources(ordered []Source, allowed mapset.Set[Source]) []Source {
	out := make([]Source, 0, len(ordered))
	for _, s := range ordered {
		if allowed.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// clampEntities rewrites each entity's source list to the allowed subset and
// removes entities left with no credible provenance.
func clampEntities[T any](items []T, allowed mapset.Set[Source], path string,
	sourcesOf func(*T) *[]Source, drop func(path, reason string)) []T {

	out := items[:0]
	for i := range items {
		src := sourcesOf(&items[i])
		claimed := mapset.NewThreadUnsafeSet[Source]()
		for _, s := range *src {
			claimed.Add(s)
		}
		clamped := clampSources(KnownSources, claimed.Intersect(allowed))
		if len(clamped) == 0 {
			drop(fmt.Sprintf("%s[%d]", path, i), "no contributing source among supplied inputs")
			continue
		}
		*src = clamped
		out = append(out, items[i])
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// dedupeStrings removes case/whitespace duplicates, keeping first spelling.
// Only exact normalized matches merge; spelling variants of the same key are
// logged so synonym pairs stay visible without being auto-merged.
func dedupeStrings(in []string) []string {
	first := make(map[string]string)
	out := in[:0]
	for _, s := range in {
		key := strings.ToLower(strings.Join(strings.Fields(s), " "))
		if key == "" {
			continue
		}
		if kept, dup := first[key]; dup {
			if s != kept {
				slog.Debug("skill spelling variant collapsed",
					slog.String("kept", kept), slog.String("dropped", s))
			}
			continue
		}
		first[key] = s
		out = append(out, s)
	}
	return out
}

// ensureCollections replaces nil slices so serialized output is stable.
func ensureCollections(p *UnifiedProfile) {
	if p.Education == nil {
		p.Education = []UnifiedEducation{}
	}
	if p.Experience == nil {
		p.Experience = []UnifiedExperience{}
	}
	if p.Projects == nil {
		p.Projects = []UnifiedProject{}
	}
	if p.Skills == nil {
		p.Skills = []SkillCategory{}
	}
	if p.Certifications == nil {
		p.Certifications = []UnifiedCertification{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.PositionsOfResponsibility == nil {
		p.PositionsOfResponsibility = []PositionOfResponsibility{}
	}
	if p.Courses == nil {
		p.Courses = []string{}
	}
	if p.DataSources == nil {
		p.DataSources = []Source{}
	}
}
