// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"
	"regexp"
	"strings"
)

// Result holds the outcome of validating a draft. Errors maps draft field
// names ("name", "type") to messages. The wizard consumes it read-only.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// FieldError returns the message for field f, or "" when the result is valid
// overall or carries no message for f. A field renders as invalid iff this
// returns a non-empty string.
func (r Result) FieldError(f string) string {
	if r.Valid {
		return ""
	}
	return r.Errors[f]
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Validate checks the draft against the rules the daemon enforces on
// registration. existing holds the names already registered; uniqueness here
// is advisory, the daemon remains authoritative.
func Validate(d Draft, existing []string) Result {
	errs := make(map[string]string)

	switch {
	case strings.TrimSpace(d.Name) == "":
		errs["name"] = "repository name is required"
	case !namePattern.MatchString(d.Name):
		errs["name"] = "name may only contain letters, digits, dots, hyphens and underscores"
	default:
		for _, n := range existing {
			if n == d.Name {
				errs["name"] = fmt.Sprintf("a repository named %q already exists", d.Name)
				break
			}
		}
	}

	if d.Type == "" {
		errs["type"] = "select a repository type"
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
