// Package validation holds the field-level error set produced when user input is rejected.
package validation

import (
	"sort"
	"strings"
)

// Errors maps a field name to a human-readable message. An empty set means the input is valid.
type Errors map[string]string

// Add records msg for field. The first message recorded for a field wins.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; exists {
		return
	}

	e[field] = msg
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the names of the failing fields in lexical order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns e as an error, or nil when there is nothing to report.
func (e Errors) OrNil() error {
	if e.Valid() {
		return nil
	}

	return e
}
