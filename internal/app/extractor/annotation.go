package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/provider"
)

// tagPattern matches a legacy Multilingual action tag such as @p1000lang.
var tagPattern = regexp.MustCompile(`@p1000([A-Za-z0-9_]*)`)

const tagPrefix = "@p1000"

// HasTranslations reports whether an annotation carries any legacy tag.
func HasTranslations(annotation string) bool {
	return strings.Contains(annotation, tagPrefix)
}

// tag is one action tag with its raw JSON payload.
type tag struct {
	name    string
	payload string
}

// splitTags cuts annotation into tags. Each payload runs from the first '{'
// after the tag to the last '}' before the next tag.
func splitTags(annotation string) []tag {
	locs := tagPattern.FindAllStringSubmatchIndex(annotation, -1)
	tags := make([]tag, 0, len(locs))
	for i, loc := range locs {
		end := len(annotation)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segment := annotation[loc[1]:end]

		payload := ""
		if open := strings.IndexByte(segment, '{'); open >= 0 {
			if closing := strings.LastIndexByte(segment, '}'); closing > open {
				payload = segment[open : closing+1]
			}
		}
		tags = append(tags, tag{name: annotation[loc[2]:loc[3]], payload: payload})
	}
	return tags
}

// ParseField turns the legacy tags of one metadata field into translation
// records, in tag order and then payload order. Empty texts produce no
// record. Tags that cannot be parsed are reported in the returned error;
// records from the other tags are still returned.
func ParseField(f provider.MetadataField) ([]domain.TranslationRecord, error) {
	var (
		records []domain.TranslationRecord
		errs    []error
	)

	add := func(field, language, text string) {
		language = strings.TrimSpace(language)
		text = domain.CleanLegacyText(text)
		if language == "" || text == "" {
			return
		}
		records = append(records, domain.TranslationRecord{
			Form:     f.FormName,
			Field:    field,
			Language: language,
			Text:     text,
		})
	}

	for _, t := range splitTags(f.Annotation) {
		obj, err := parsePayload(t.payload)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", tagPrefix, t.name, err))
			continue
		}

		switch t.name {
		case "answers":
			obj.ForEach(func(lang, choices gjson.Result) bool {
				if !choices.IsObject() {
					if choices.String() != "" {
						errs = append(errs, fmt.Errorf("%sanswers: language %q: answers must be an object", tagPrefix, lang.String()))
					}
					return true
				}
				choices.ForEach(func(value, text gjson.Result) bool {
					add(domain.ChoiceField(f.FieldName, value.String()), lang.String(), text.String())
					return true
				})
				return true
			})
		default:
			field := f.FieldName
			if !isPrimaryTag(t.name) {
				field = domain.TaggedField(f.FieldName, "p1000"+t.name)
			}
			obj.ForEach(func(lang, text gjson.Result) bool {
				if text.IsObject() || text.IsArray() {
					errs = append(errs, fmt.Errorf("%s%s: language %q: expected text", tagPrefix, t.name, lang.String()))
					return true
				}
				add(field, lang.String(), text.String())
				return true
			})
		}
	}

	return records, errors.Join(errs...)
}

// isPrimaryTag reports tags whose text belongs to the field itself.
func isPrimaryTag(name string) bool {
	switch name {
	case "", "lang", "surveytext":
		return true
	}
	return false
}

// parsePayload validates payload as a JSON object. Raw control characters
// inside strings are tolerated, as the legacy module never escaped them.
func parsePayload(payload string) (gjson.Result, error) {
	if payload == "" {
		return gjson.Result{}, errors.New("no JSON object after tag")
	}
	payload = escapeControlChars(payload)
	if !gjson.Valid(payload) {
		return gjson.Result{}, errors.New("invalid JSON payload")
	}
	obj := gjson.Parse(payload)
	if !obj.IsObject() {
		return gjson.Result{}, errors.New("payload is not an object")
	}
	return obj, nil
}

// escapeControlChars rewrites raw control characters that appear inside
// JSON string literals as escape sequences.
func escapeControlChars(s string) string {
	var (
		b        strings.Builder
		inString bool
		escaped  bool
	)
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString && c < 0x20:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
