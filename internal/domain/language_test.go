package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLanguages(t *testing.T) *LanguageTable {
	t.Helper()
	table, err := NewLanguageTable([]LanguageEntry{
		{EnglishName: "English", ShortCode: "en", NativeName: "English"},
		{EnglishName: "Spanish", ShortCode: "es", NativeName: "Español"},
		{EnglishName: "Chinese", ShortCode: "zh", NativeName: "中文"},
		{EnglishName: "Vietnamese", ShortCode: "vi", NativeName: "Tiếng Việt"},
	})
	require.NoError(t, err)
	return table
}

func TestLanguageTable_Resolve(t *testing.T) {
	t.Parallel()

	table := testLanguages(t)

	tests := []struct {
		input string
		want  string
	}{
		{"es", "es"},
		{"ES", "es"},
		{"Spanish", "es"},
		{"spanish", "es"},
		{"  SPANISH ", "es"},
		{"Español", "es"},
		{"中文", "zh"},
		{"tiếng việt", "vi"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := table.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ShortCode)
		})
	}
}

func TestLanguageTable_Resolve_CodeAndNameAgree(t *testing.T) {
	t.Parallel()

	table := testLanguages(t)

	byCode, err := table.Resolve("es")
	require.NoError(t, err)
	byName, err := table.Resolve("Spanish")
	require.NoError(t, err)

	assert.Equal(t, byCode, byName)
}

func TestLanguageTable_Resolve_Unknown(t *testing.T) {
	t.Parallel()

	table := testLanguages(t)

	_, err := table.Resolve("Klingon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLanguage))

	var langErr *UnknownLanguageError
	require.True(t, errors.As(err, &langErr))
	assert.Equal(t, "Klingon", langErr.Input)
	assert.Equal(t, []string{"en", "es", "zh", "vi", "English", "Spanish", "Chinese", "Vietnamese"}, langErr.Accepted)
}

func TestLanguageTable_NilResolvesNothing(t *testing.T) {
	t.Parallel()

	var table *LanguageTable
	_, err := table.Resolve("en")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Equal(t, 0, table.Len())
}

func TestNewLanguageTable_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []LanguageEntry
	}{
		{
			name:    "three letter code",
			entries: []LanguageEntry{{EnglishName: "Spanish", ShortCode: "spa", NativeName: "Español"}},
		},
		{
			name:    "empty code",
			entries: []LanguageEntry{{EnglishName: "Spanish", ShortCode: "", NativeName: "Español"}},
		},
		{
			name: "duplicate code",
			entries: []LanguageEntry{
				{EnglishName: "Spanish", ShortCode: "es", NativeName: "Español"},
				{EnglishName: "Estonian", ShortCode: "ES", NativeName: "Eesti"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewLanguageTable(tt.entries)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestTranslationRecord_Key(t *testing.T) {
	t.Parallel()

	r := TranslationRecord{Form: "consent", Field: "agree", Language: "es", Text: "Sí"}
	assert.Equal(t, RecordKey{Form: "consent", Field: "agree", Language: "es"}, r.Key())
	assert.Equal(t, "agree[value=1]", ChoiceField("agree", "1"))
	assert.Equal(t, "agree_p1000notes", TaggedField("agree", "p1000notes"))
}
