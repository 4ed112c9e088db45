// Package query implements the read-only custom query escape hatch.
// Statements are screened before execution; anything that could mutate
// state is rejected up front, distinctly from runtime query failures.
package query

import (
	"regexp"
	"strings"

	"retail-analytics/internal/errors"
)

// mutating matches any statement keyword that writes, case-insensitive,
// on word boundaries so column names like "created_at" pass.
var mutating = regexp.MustCompile(`(?i)\b(DROP|DELETE|UPDATE|ALTER|CREATE|INSERT)\b`)

// Guard screens custom query statements before execution
type Guard struct{}

// NewGuard creates a query guard
func NewGuard() *Guard {
	return &Guard{}
}

// Check rejects empty statements and statements containing a mutating
// keyword. A nil return means the statement may be executed.
func (g *Guard) Check(statement string) error {
	trimmed := strings.TrimSpace(statement)
	if trimmed == "" {
		return errors.QueryRejected("empty query")
	}
	if m := mutating.FindString(trimmed); m != "" {
		return errors.QueryRejected("mutating keyword not allowed: " + strings.ToUpper(m)).
			WithContext("statement", trimmed)
	}
	return nil
}
