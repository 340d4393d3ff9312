package profile

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return validate.Var(s, "required,email") == nil
}

// SubmittableEmail returns the trimmed draft email when valid and "" otherwise.
// Invalid drafts are dropped silently rather than rejected.
func SubmittableEmail(draft string) string {
	if ValidEmail(draft) {
		return strings.TrimSpace(draft)
	}
	return ""
}
