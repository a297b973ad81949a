package common

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxUnwrap bounds how many layers of entity encoding Text peels off.
const maxUnwrap = 8

// Sanitizer strips every HTML tag from free text before it reaches storage.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes markup and returns plain text. Entities are decoded because
// responses are JSON, not HTML, and the result is sanitized again until it is
// stable so that encoded markup cannot come back as tags. Input that never
// settles is returned in its escaped form.
func (s *Sanitizer) Text(value string) string {
	current := value
	for i := 0; i < maxUnwrap; i++ {
		escaped := s.policy.Sanitize(current)
		plain := html.UnescapeString(escaped)
		if plain == current {
			return strings.TrimSpace(plain)
		}
		current = plain
	}
	return strings.TrimSpace(s.policy.Sanitize(current))
}

func (s *Sanitizer) TextPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := s.Text(*value)
	return &cleaned
}
