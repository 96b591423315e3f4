package profile

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned when the semantic-merge oracle could
// not be reached or timed out after retries. Aggregation aborts; no partial
// profile is fabricated.
var ErrUpstreamUnavailable = errors.New("merge oracle unavailable")

// SourceUnavailableError marks a single source extractor failure. Absorbed
// by the engine: the source simply contributes nothing.
type SourceUnavailableError struct {
	Source Source
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// SchemaViolationError means the oracle returned content that does not
// validate against the UnifiedProfile schema. Carries the raw output for
// diagnosis; aggregation aborts rather than patching guesses in.
type SchemaViolationError struct {
	RawOutput string
	Detail    string
	Err       error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("oracle output violates profile schema: %s", e.Detail)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }

// FieldDrop records a single non-fatal field removal during post-processing
// (e.g. a malformed URL). Logged, never aborts aggregation.
type FieldDrop struct {
	FieldPath string `json:"field_path"`
	Reason    string `json:"reason"`
}
