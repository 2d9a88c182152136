// Package parse provides deterministic rule-based extraction of
// execution-algorithm intents and order fields from trader free text.
// It is the fallback path when the language-model backend is absent
// and the oracle the model-backed path is checked against.
package parse

import "strings"

// Normalize trims and lower-cases raw trader input. It is total and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
