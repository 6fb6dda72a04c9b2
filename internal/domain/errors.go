package domain

import (
	"fmt"
)

/* ─── Error kinds ────────────────────────────────────────────────────── */

// ConfigurationError reports a categorical value outside its defined set,
// e.g. an unknown activity level or a fitness goal with no mapped workout
// distribution. Retrying with the same input never succeeds.
type ConfigurationError struct {
	Kind  string // "activity level", "fitness goal", ...
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: unknown %s %q", e.Kind, e.Value)
}

// EmptyCatalogError reports that no catalog entries can satisfy a plan request.
// Catalog names the catalog that came up empty ("food", "exercise").
type EmptyCatalogError struct {
	Catalog string
	Detail  string
}

func (e *EmptyCatalogError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("empty %s catalog: %s", e.Catalog, e.Detail)
	}
	return fmt.Sprintf("empty %s catalog", e.Catalog)
}

// ParseError reports a malformed CSV record. Line is 1-based; 0 means the
// record was parsed outside of a file (e.g. a single API field).
type ParseError struct {
	Line   int
	Record string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %s", e.Line, msg)
	}
	return "parse error: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a domain value that is present but invalid, such as
// a negative weight. The engine never substitutes a default for it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func configErr(kind, value string) error {
	return &ConfigurationError{Kind: kind, Value: value}
}
