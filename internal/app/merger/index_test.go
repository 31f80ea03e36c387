package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
)

func testLanguages(t *testing.T) *domain.LanguageTable {
	t.Helper()
	table, err := domain.NewLanguageTable([]domain.LanguageEntry{
		{EnglishName: "English", ShortCode: "en", NativeName: "English"},
		{EnglishName: "Spanish", ShortCode: "es", NativeName: "Español"},
		{EnglishName: "Korean", ShortCode: "ko", NativeName: "한국어"},
	})
	require.NoError(t, err)
	return table
}

func TestBuildIndex_ResolvesLanguageColumn(t *testing.T) {
	t.Parallel()

	records := []domain.TranslationRecord{
		{Form: "consent", Field: "agree", Language: "Español", Text: "¿Acepta?"},
		{Form: "consent", Field: "agree", Language: "ko", Text: "동의합니까?"},
		{Form: "consent", Field: "age", Language: "spanish", Text: "Edad"},
	}

	idx, stats := BuildIndex(records, testLanguages(t), newTestLogger())
	assert.Equal(t, IndexStats{Records: 3}, stats)
	assert.Equal(t, 3, idx.Len())

	text, ok := idx.Lookup("consent", "agree", "es")
	require.True(t, ok)
	assert.Equal(t, "¿Acepta?", text)

	text, ok = idx.Lookup("consent", "agree", "ko")
	require.True(t, ok)
	assert.Equal(t, "동의합니까?", text)

	text, ok = idx.Lookup("consent", "age", "es")
	require.True(t, ok)
	assert.Equal(t, "Edad", text)
}

func TestBuildIndex_FirstDuplicateWins(t *testing.T) {
	t.Parallel()

	records := []domain.TranslationRecord{
		{Form: "f", Field: "q", Language: "es", Text: "primero"},
		{Form: "f", Field: "q", Language: "Español", Text: "segundo"},
		{Form: "f", Field: "q", Language: "ES", Text: "tercero"},
	}

	idx, stats := BuildIndex(records, testLanguages(t), newTestLogger())
	assert.Equal(t, 2, stats.Duplicates)

	text, ok := idx.Lookup("f", "q", "es")
	require.True(t, ok)
	assert.Equal(t, "primero", text)
}

func TestBuildIndex_UnknownLanguageCounted(t *testing.T) {
	t.Parallel()

	records := []domain.TranslationRecord{
		{Form: "f", Field: "q", Language: "Klingon", Text: "nuqneH"},
		{Form: "f", Field: "r", Language: "Klingon", Text: "Qapla'"},
		{Form: "f", Field: "q", Language: "en", Text: "Hello"},
	}

	idx, stats := BuildIndex(records, testLanguages(t), newTestLogger())
	assert.Equal(t, 2, stats.UnknownLanguage)
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_Lookup_FormMatching(t *testing.T) {
	t.Parallel()

	records := []domain.TranslationRecord{
		{Form: "F1", Field: "A", Language: "es", Text: "Hola"},
		{Form: "F2", Field: "A", Language: "es", Text: "Adiós"},
	}
	idx, _ := BuildIndex(records, testLanguages(t), newTestLogger())

	_, ok := idx.Lookup("F3", "A", "es")
	assert.False(t, ok, "form must match exactly")

	text, ok := idx.Lookup("F2", "A", "es")
	require.True(t, ok)
	assert.Equal(t, "Adiós", text)

	text, ok = idx.Lookup("", "A", "es")
	require.True(t, ok)
	assert.Equal(t, "Hola", text, "entries without a form use the first record for the field")

	_, ok = idx.Lookup("F1", "A", "en")
	assert.False(t, ok)
}
