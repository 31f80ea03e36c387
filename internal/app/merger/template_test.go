package merger

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const mlmTemplate = `{
  "key": "mlm-export",
  "fields": [
    {
      "id": "agree",
      "form": "consent",
      "label": {"hash": "a1", "translation": ""},
      "enum": [
        {"id": 0, "hash": "e0", "translation": ""},
        {"id": 1, "hash": "e1", "translation": ""}
      ],
      "note": {"hash": "n1", "translation": ""}
    },
    {
      "id": "age",
      "form": "consent",
      "translation": "placeholder",
      "label": {"hash": "a2", "translation": "ignored"}
    },
    {"form": "consent", "label": {"hash": "x", "translation": ""}}
  ],
  "forms": [
    {"id": "consent", "translation": ""}
  ],
  "survey.settings": [
    {"id": "survey-title", "translation": ""},
    "not-an-object"
  ],
  "meta": {"version": 1, "translation": ""}
}`

func TestParseTemplate_Slots(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate([]byte(mlmTemplate), newTestLogger())
	require.NoError(t, err)

	require.Len(t, tpl.Entries, 4)
	assert.Equal(t, 1, tpl.WithoutID)

	agree := tpl.Entries[0]
	assert.Equal(t, "fields", agree.Category)
	assert.Equal(t, "consent", agree.Form)
	assert.Equal(t, []Slot{
		{Path: "fields.0.label.translation", Field: "agree", Current: ""},
		{Path: "fields.0.enum.0.translation", Field: "agree[value=0]", Current: ""},
		{Path: "fields.0.enum.1.translation", Field: "agree[value=1]", Current: ""},
		{Path: "fields.0.note.translation", Field: "agree_p1000notes", Current: ""},
	}, agree.Slots)

	age := tpl.Entries[1]
	assert.Equal(t, []Slot{
		{Path: "fields.1.translation", Field: "age", Current: "placeholder"},
	}, age.Slots, "top-level translation takes precedence over label")

	forms := tpl.Entries[2]
	assert.Equal(t, "forms", forms.Category)
	assert.Empty(t, forms.Form)
	assert.Equal(t, "forms.0.translation", forms.Slots[0].Path)

	settings := tpl.Entries[3]
	assert.Equal(t, `survey\.settings.0.translation`, settings.Slots[0].Path)

	assert.Equal(t, 7, tpl.SlotCount())
}

func TestParseTemplate_BOM(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate(append([]byte("\xEF\xBB\xBF"), `{"fields": []}`...), newTestLogger())
	require.NoError(t, err)
	assert.True(t, tpl.bom)
	assert.Empty(t, tpl.Entries)
}

func TestParseTemplate_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"fields": [`},
		{"root array", `[{"id": "a"}]`},
		{"no fields", `{"forms": []}`},
		{"fields not array", `{"fields": {"id": "a"}}`},
		{"forms not array", `{"fields": [], "forms": "consent"}`},
		{"field not object", `{"fields": ["agree"]}`},
		{"form not object", `{"fields": [], "forms": [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTemplate([]byte(tt.json), newTestLogger())
			assert.True(t, errors.Is(err, domain.ErrMalformedTemplate), "got %v", err)
		})
	}
}
