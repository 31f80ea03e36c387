package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName prepares a language name or code for case-insensitive lookup:
//   - trims leading/trailing whitespace
//   - applies Unicode case folding
//   - compresses runs of whitespace into a single space
//
// Diacritics are preserved, so "Español" and "espanol" stay distinct.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(cases.Fold().String(name)), " ")
}

// CleanLegacyText restores text stored by the legacy module: it replaced
// every '@' with "___" on save, which breaks e-mail addresses and action tags.
// Surrounding whitespace is trimmed.
func CleanLegacyText(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "___", "@"))
}
