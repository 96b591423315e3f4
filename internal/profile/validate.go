package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// SchemaJSON returns the canonical UnifiedProfile JSON Schema. It is the
// single source of truth: embedded into the merge prompt so the oracle
// knows the target shape, and used to validate what comes back.
func SchemaJSON() string { return schemaJSON }

// Parse validates raw oracle output against the UnifiedProfile schema and
// decodes it. Any validation or decode failure is a *SchemaViolationError
// carrying the raw text, never silently patched.
func Parse(raw string) (*UnifiedProfile, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	docLoader := gojsonschema.NewStringLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, &SchemaViolationError{
			RawOutput: raw,
			Detail:    "not valid JSON: " + err.Error(),
			Err:       err,
		}
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &SchemaViolationError{
			RawOutput: raw,
			Detail:    strings.Join(msgs, "; "),
		}
	}

	var p UnifiedProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &SchemaViolationError{
			RawOutput: raw,
			Detail:    fmt.Sprintf("decode: %v", err),
			Err:       err,
		}
	}
	return &p, nil
}
