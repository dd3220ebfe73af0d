// Package validate implements a small declarative field checker. A RuleSet
// pairs field names with predicates and messages; applying it to a payload
// yields every violation in declaration order, so callers can reject a
// request atomically with the full list instead of failing on the first rule.
package validate

import (
	"strings"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Rule checks a single field. Check returns true when the value is valid.
type Rule struct {
	Field   string
	Message string
	Check   func(value string) bool
}

// RuleSet is an ordered list of rules. Order is declaration order, not
// severity: violations come back in the same order the rules were written.
type RuleSet []Rule

// Apply runs every rule against the payload and collects all violations.
// Missing fields are checked as empty strings.
func (rs RuleSet) Apply(values map[string]string) []common.FieldError {
	var violations []common.FieldError
	for _, r := range rs {
		if !r.Check(values[r.Field]) {
			violations = append(violations, common.FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return violations
}

// NotEmpty reports whether the value contains any non-whitespace character.
func NotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinLen returns a predicate requiring at least n bytes.
func MinLen(n int) func(string) bool {
	return func(value string) bool {
		return len(value) >= n
	}
}

// Email reports whether the value looks like an email address: a non-empty
// local part, an '@', and a domain with at least one interior dot.
func Email(value string) bool {
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	domain := value[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
