package merger

import (
	"bytes"
	"encoding/json"
	"strings"
)

// QuoteMode selects how double quotes in substituted text are written.
type QuoteMode int

const (
	// QuoteReplace turns every '"' into '\''. This is the default.
	QuoteReplace QuoteMode = iota
	// QuoteEscape keeps '"' and writes it as \" inside the JSON string.
	QuoteEscape
)

func (m QuoteMode) String() string {
	if m == QuoteEscape {
		return "escape"
	}
	return "replace"
}

// Apply returns the string value that will be stored for text.
func (m QuoteMode) Apply(text string) string {
	if m == QuoteEscape {
		return text
	}
	return strings.ReplaceAll(text, `"`, `'`)
}

// Literal returns text as a JSON string literal after applying the mode.
// HTML characters and non-ASCII text are written as-is.
func (m QuoteMode) Literal(text string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(m.Apply(text))
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
