package domain

// TranslationRecord is one translated string extracted from the legacy module.
// Language holds whatever the legacy project used as its key, usually the
// native language name ("Español"); the Merger resolves it to a short code.
type TranslationRecord struct {
	Form     string
	Field    string
	Language string
	Text     string
}

// RecordKey identifies a translation across the tabular file and the template.
type RecordKey struct {
	Form     string
	Field    string
	Language string
}

// Key returns the lookup key of the record.
func (r TranslationRecord) Key() RecordKey {
	return RecordKey{Form: r.Form, Field: r.Field, Language: r.Language}
}

// ChoiceField returns the field name used for one multiple-choice answer,
// e.g. "smoker[value=1]".
func ChoiceField(field, value string) string {
	return field + "[value=" + value + "]"
}

// TaggedField returns the field name used for a secondary translation tag,
// e.g. "consent_p1000notes".
func TaggedField(field, tag string) string {
	return field + "_" + tag
}
