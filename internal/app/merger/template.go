package merger

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/pkg/fileutil"
)

// Categories the MLM export must contain. "fields" is required, "forms"
// is optional but must be an array when present.
const (
	fieldsCategory = "fields"
	formsCategory  = "forms"
	notesTag       = "p1000notes"
)

// Slot is one translatable string inside a template entry.
type Slot struct {
	// Path locates the string in the template (gjson/sjson syntax).
	Path string
	// Field is the translation field name the slot is filled from.
	Field string
	// Current is the value exported by MLM, usually empty.
	Current string
}

// Entry is one object of a template category, e.g. a REDCap field.
type Entry struct {
	Category string
	Index    int
	ID       string
	Form     string
	Slots    []Slot
}

// Template is a parsed MLM export. The raw bytes are kept so the filled
// output differs from the input only inside replaced string literals.
type Template struct {
	raw     []byte
	bom     bool
	Entries []Entry
	// WithoutID counts category objects that carry no "id" and were skipped.
	WithoutID int
}

// ParseTemplate validates the template shape and collects every
// translatable slot in document order. Shape violations wrap
// domain.ErrMalformedTemplate.
func ParseTemplate(data []byte, log *slog.Logger) (*Template, error) {
	raw, bom := fileutil.StripBOM(data)
	if !gjson.ValidBytes(raw) {
		return nil, domain.NewMalformedTemplateError("template is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, domain.NewMalformedTemplateError("template root must be an object")
	}

	fields := root.Get(fieldsCategory)
	if !fields.Exists() {
		return nil, domain.NewMalformedTemplateError("template has no %q array", fieldsCategory)
	}
	if !fields.IsArray() {
		return nil, domain.NewMalformedTemplateError("template %q must be an array", fieldsCategory)
	}
	if forms := root.Get(formsCategory); forms.Exists() && !forms.IsArray() {
		return nil, domain.NewMalformedTemplateError("template %q must be an array", formsCategory)
	}

	tpl := &Template{raw: raw, bom: bom}

	var shapeErr error
	root.ForEach(func(key, category gjson.Result) bool {
		if !category.IsArray() {
			return true
		}
		name := key.String()
		strict := name == fieldsCategory || name == formsCategory

		i := -1
		category.ForEach(func(_, item gjson.Result) bool {
			i++
			if !item.IsObject() {
				if strict {
					shapeErr = domain.NewMalformedTemplateError("template %q element %d is not an object", name, i)
					return false
				}
				return true
			}
			entry, ok := parseEntry(name, i, item)
			if !ok {
				tpl.WithoutID++
				log.Warn("template entry without id", slog.String("category", name), slog.Int("index", i))
				return true
			}
			tpl.Entries = append(tpl.Entries, entry)
			return true
		})
		return shapeErr == nil
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	return tpl, nil
}

// parseEntry reads one category object. A top-level "translation" string
// takes precedence over "label.translation"; "enum" and "note" slots are
// collected independently.
func parseEntry(category string, index int, item gjson.Result) (Entry, bool) {
	idValue := item.Get("id")
	if !idValue.Exists() || idValue.String() == "" {
		return Entry{}, false
	}

	e := Entry{
		Category: category,
		Index:    index,
		ID:       idValue.String(),
	}
	if form := item.Get("form"); form.Type == gjson.String {
		e.Form = form.String()
	}

	base := gjson.Escape(category) + "." + strconv.Itoa(index)

	if t := item.Get("translation"); t.Type == gjson.String {
		e.Slots = append(e.Slots, Slot{Path: childPath(base, "translation"), Field: e.ID, Current: t.String()})
	} else if t := item.Get("label.translation"); t.Type == gjson.String {
		e.Slots = append(e.Slots, Slot{Path: childPath(base, "label", "translation"), Field: e.ID, Current: t.String()})
	}

	if choices := item.Get("enum"); choices.IsArray() {
		j := -1
		choices.ForEach(func(_, choice gjson.Result) bool {
			j++
			t := choice.Get("translation")
			if !choice.IsObject() || t.Type != gjson.String {
				return true
			}
			e.Slots = append(e.Slots, Slot{
				Path:    childPath(base, "enum", strconv.Itoa(j), "translation"),
				Field:   domain.ChoiceField(e.ID, choice.Get("id").String()),
				Current: t.String(),
			})
			return true
		})
	}

	if t := item.Get("note.translation"); t.Type == gjson.String {
		e.Slots = append(e.Slots, Slot{
			Path:    childPath(base, "note", "translation"),
			Field:   domain.TaggedField(e.ID, notesTag),
			Current: t.String(),
		})
	}

	return e, true
}

// childPath appends fixed names or indexes to an already escaped path.
func childPath(base string, parts ...string) string {
	return base + "." + strings.Join(parts, ".")
}

// SlotCount returns the number of translatable slots.
func (t *Template) SlotCount() int {
	n := 0
	for _, e := range t.Entries {
		n += len(e.Slots)
	}
	return n
}
