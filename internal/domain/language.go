package domain

import "fmt"

// LanguageEntry maps between the three ways a language may be identified.
type LanguageEntry struct {
	EnglishName string
	ShortCode   string
	NativeName  string
}

// LanguageTable resolves user input and legacy language keys to entries.
// Build it with NewLanguageTable; the zero value resolves nothing.
type LanguageTable struct {
	entries []LanguageEntry
	index   map[string]int
}

// NewLanguageTable validates entries and indexes them by short code,
// English name, and native name. Short codes must be exactly two characters
// and unique. A name shared by two entries resolves to the first one.
func NewLanguageTable(entries []LanguageEntry) (*LanguageTable, error) {
	t := &LanguageTable{
		entries: make([]LanguageEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)*3),
	}

	codes := make(map[string]string, len(entries))
	for _, e := range entries {
		code := NormalizeName(e.ShortCode)
		if len([]rune(code)) != 2 {
			return nil, NewConfigurationError("language %q: short code %q must be exactly two characters", e.EnglishName, e.ShortCode)
		}
		if prev, dup := codes[code]; dup {
			return nil, NewConfigurationError("short code %q used by both %q and %q", e.ShortCode, prev, e.EnglishName)
		}
		codes[code] = e.EnglishName

		e.ShortCode = code
		i := len(t.entries)
		t.entries = append(t.entries, e)

		// Codes win over names: a two-letter English name never shadows a code.
		t.index[code] = i
	}

	for i, e := range t.entries {
		for _, name := range []string{e.EnglishName, e.NativeName} {
			key := NormalizeName(name)
			if key == "" {
				continue
			}
			if _, taken := t.index[key]; !taken {
				t.index[key] = i
			}
		}
	}

	return t, nil
}

// Resolve finds the entry matching input by short code, English name, or
// native name, ignoring case and surrounding whitespace.
func (t *LanguageTable) Resolve(input string) (LanguageEntry, error) {
	if t != nil {
		if i, ok := t.index[NormalizeName(input)]; ok {
			return t.entries[i], nil
		}
	}
	return LanguageEntry{}, &UnknownLanguageError{Input: input, Accepted: t.Accepted()}
}

// Accepted lists every short code followed by every English name, in table order.
func (t *LanguageTable) Accepted() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.entries)*2)
	for _, e := range t.entries {
		out = append(out, e.ShortCode)
	}
	for _, e := range t.entries {
		out = append(out, e.EnglishName)
	}
	return out
}

// Entries returns a copy of the table in load order.
func (t *LanguageTable) Entries() []LanguageEntry {
	if t == nil {
		return nil
	}
	return append([]LanguageEntry(nil), t.entries...)
}

// Len returns the number of languages in the table.
func (t *LanguageTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (e LanguageEntry) String() string {
	return fmt.Sprintf("%s (%s)", e.EnglishName, e.ShortCode)
}
