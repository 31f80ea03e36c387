package merger

import (
	"log/slog"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
)

type fieldKey struct {
	Field    string
	Language string
}

// Index maps (form, field, short code) to translated text.
type Index struct {
	byKey   map[domain.RecordKey]string
	byField map[fieldKey]string
}

// IndexStats holds counters gathered while building an Index.
type IndexStats struct {
	Records         int
	UnknownLanguage int
	Duplicates      int
}

// BuildIndex resolves every record's language to a short code and indexes
// the text. The first record for a key wins; later ones are counted and
// logged as duplicates. Records in a language missing from the table are
// counted and logged once per language.
func BuildIndex(records []domain.TranslationRecord, languages *domain.LanguageTable, log *slog.Logger) (*Index, IndexStats) {
	idx := &Index{
		byKey:   make(map[domain.RecordKey]string, len(records)),
		byField: make(map[fieldKey]string, len(records)),
	}
	stats := IndexStats{Records: len(records)}
	unknown := make(map[string]bool)

	for _, r := range records {
		lang, err := languages.Resolve(r.Language)
		if err != nil {
			stats.UnknownLanguage++
			if !unknown[r.Language] {
				unknown[r.Language] = true
				log.Warn("translations in a language missing from the language table",
					slog.String("language", r.Language))
			}
			continue
		}

		key := domain.RecordKey{Form: r.Form, Field: r.Field, Language: lang.ShortCode}
		if _, dup := idx.byKey[key]; dup {
			stats.Duplicates++
			log.Warn("duplicate translation; keeping the first one",
				slog.String("form", key.Form),
				slog.String("field", key.Field),
				slog.String("language", key.Language),
			)
			continue
		}
		idx.byKey[key] = r.Text

		fk := fieldKey{Field: r.Field, Language: lang.ShortCode}
		if _, ok := idx.byField[fk]; !ok {
			idx.byField[fk] = r.Text
		}
	}

	return idx, stats
}

// Lookup returns the text for a template slot. Entries that name their form
// must match it exactly; entries without a form match on field alone.
func (i *Index) Lookup(form, field, code string) (string, bool) {
	if form != "" {
		text, ok := i.byKey[domain.RecordKey{Form: form, Field: field, Language: code}]
		return text, ok
	}
	text, ok := i.byField[fieldKey{Field: field, Language: code}]
	return text, ok
}

// Len returns the number of distinct (form, field, language) keys.
func (i *Index) Len() int { return len(i.byKey) }
