package content

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans the rendered-HTML cache supplied by editors before it is stored
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer using the user-generated-content policy
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return &Sanitizer{policy: p}
}

// Sanitize returns a sanitized copy of html, or nil when html is nil
func (s *Sanitizer) Sanitize(html *string) *string {
	if html == nil {
		return nil
	}
	clean := s.policy.Sanitize(*html)
	return &clean
}
