package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/pkg/fileutil"
)

// LoadLanguages reads the language lookup table: one language per line with
// columns English name, two-character short code, native name. Lines starting
// with '#' are comments. All failures wrap domain.ErrConfiguration.
func LoadLanguages(path string) (*domain.LanguageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigurationError("read languages file %s: %v", path, err)
	}
	data, _ = fileutil.StripBOM(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = 3
	r.TrimLeadingSpace = true

	var entries []domain.LanguageEntry
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewConfigurationError("languages file %s: %v", path, err)
		}
		entries = append(entries, domain.LanguageEntry{
			EnglishName: strings.TrimSpace(row[0]),
			ShortCode:   strings.TrimSpace(row[1]),
			NativeName:  strings.TrimSpace(row[2]),
		})
	}
	if len(entries) == 0 {
		return nil, domain.NewConfigurationError("languages file %s has no entries", path)
	}

	table, err := domain.NewLanguageTable(entries)
	if err != nil {
		return nil, fmt.Errorf("languages file %s: %w", path, err)
	}
	return table, nil
}
