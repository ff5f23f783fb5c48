package preview

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	examplePolicyOnce sync.Once
	examplePolicy     *bluemonday.Policy
)

// sanitizeExample strips markup from sample text. The result is HTML safe and
// is written to the page unescaped.
func sanitizeExample(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(exampleSanitizer().Sanitize(trimmed))
}

func exampleSanitizer() *bluemonday.Policy {
	examplePolicyOnce.Do(func() {
		examplePolicy = bluemonday.StrictPolicy()
	})
	return examplePolicy
}
