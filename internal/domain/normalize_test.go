package domain

import "testing"

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Spanish  ", want: "spanish"},
		{name: "short code", input: "ES", want: "es"},
		{name: "compress multiple spaces", input: "Tiếng   Việt", want: "tiếng việt"},
		{name: "diacritics preserved", input: "Español", want: "español"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and spaces", input: "\t korean \t", want: "korean"},
		{name: "non-latin unchanged", input: "中文", want: "中文"},
		{name: "mixed case", input: "hAITIAN creole", want: "haitian creole"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanLegacyText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "email restored", input: "Write to help___example.org", want: "Write to help@example.org"},
		{name: "trimmed", input: "  Hola \n", want: "Hola"},
		{name: "quotes untouched", input: `<b style="color:red">Sí</b>`, want: `<b style="color:red">Sí</b>`},
		{name: "whitespace only", input: " \t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanLegacyText(tt.input); got != tt.want {
				t.Errorf("CleanLegacyText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
