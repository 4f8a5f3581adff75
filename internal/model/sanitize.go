package model

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText removes every tag from raw. The strict policy entity-encodes
// its output, so entities are decoded again to keep plain text plain.
func sanitizeText(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
