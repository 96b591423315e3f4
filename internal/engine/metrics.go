package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	AggregateRequests atomic.Int64
	OracleCalls       atomic.Int64
	OracleErrors      atomic.Int64
	SchemaViolations  atomic.Int64
	FieldsDropped     atomic.Int64
	ResumeParses      atomic.Int64
	LinkedInParses    atomic.Int64
	GithubRequests    atomic.Int64
	OutreachRequests  atomic.Int64
	SourcesAbsent     atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"aggregate_requests": metrics.AggregateRequests.Load(),
		"oracle_calls":       metrics.OracleCalls.Load(),
		"oracle_errors":      metrics.OracleErrors.Load(),
		"schema_violations":  metrics.SchemaViolations.Load(),
		"fields_dropped":     metrics.FieldsDropped.Load(),
		"resume_parses":      metrics.ResumeParses.Load(),
		"linkedin_parses":    metrics.LinkedInParses.Load(),
		"github_requests":    metrics.GithubRequests.Load(),
		"outreach_requests":  metrics.OutreachRequests.Load(),
		"sources_absent":     metrics.SourcesAbsent.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"aggregate_requests",
		"oracle_calls", "oracle_errors",
		"schema_violations", "fields_dropped",
		"resume_parses", "linkedin_parses", "github_requests",
		"outreach_requests", "sources_absent",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the engine and sub-packages.
func IncrAggregateRequests() { metrics.AggregateRequests.Add(1) }
func IncrOracleCalls()       { metrics.OracleCalls.Add(1) }
func IncrOracleErrors()      { metrics.OracleErrors.Add(1) }
func IncrSchemaViolations()  { metrics.SchemaViolations.Add(1) }
func IncrResumeParses()      { metrics.ResumeParses.Add(1) }
func IncrLinkedInParses()    { metrics.LinkedInParses.Add(1) }
func IncrGithubRequests()    { metrics.GithubRequests.Add(1) }
func IncrOutreachRequests()  { metrics.OutreachRequests.Add(1) }
func IncrSourcesAbsent()     { metrics.SourcesAbsent.Add(1) }

// AddFieldsDropped records n non-fatal field drops from post-processing.
func AddFieldsDropped(n int) { metrics.FieldsDropped.Add(int64(n)) }
