// Package render prepares stored legal text for display: token substitution
// into acceptance labels and HTML sanitization of admin-supplied markup.
// Sanitization happens on render, never on storage, so the stored text stays
// byte-for-byte what the administrator entered.
package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// TokenDocumentLabel is the token an acceptance-label template may embed to
// reference the owning document's label, e.g. "I agree to the {documentLabel}".
const TokenDocumentLabel = "documentLabel"

var tokenRE = regexp.MustCompile(`\{\s*([a-zA-Z][a-zA-Z0-9_]*)\s*\}`)

// labelPolicy allows only the inline markup acceptance labels legitimately
// carry. Everything else, script tags included, is stripped while the text
// content is preserved.
var labelPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "em", "strong", "cite", "code")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	return p
}()

// bodyPolicy sanitizes full document bodies. UGC policy covers the block
// markup a legal text needs while still stripping scripts and event handlers.
var bodyPolicy = bluemonday.UGCPolicy()

// ReplaceTokens substitutes {token} placeholders in s using the provided
// values. Unknown tokens are left untouched so a typo is visible rather than
// silently erased.
func ReplaceTokens(s string, values map[string]string) string {
	return tokenRE.ReplaceAllStringFunc(s, func(m string) string {
		key := tokenRE.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// AcceptanceLabel resolves an acceptance-label template against the owning
// document's label and strips unsafe markup. The template and the label are
// both admin input and must never reach a UI context unsanitized.
func AcceptanceLabel(template, documentLabel string) string {
	resolved := ReplaceTokens(template, map[string]string{
		TokenDocumentLabel: documentLabel,
	})
	return labelPolicy.Sanitize(resolved)
}

// Body sanitizes a version body for display.
func Body(body string) string {
	return bodyPolicy.Sanitize(body)
}
