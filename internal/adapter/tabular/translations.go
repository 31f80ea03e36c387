// Package tabular reads and writes the CSV files exchanged between the
// extraction and merge stages, and the language lookup table.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/pkg/fileutil"
)

// TimestampLayout is the timestamp prefix of every generated file name.
const TimestampLayout = "20060102_150405"

const translationsSuffix = "-translations.csv"

// Header is the fixed column order of the translations file.
var Header = []string{"form", "field", "language", "text"}

// TranslationsFileName returns the timestamped translations file name for t.
func TranslationsFileName(t time.Time) string {
	return t.Format(TimestampLayout) + translationsSuffix
}

// WriteTranslations writes records to path in the order given, creating the
// parent directory if needed. The file is written atomically with a UTF-8 BOM
// so spreadsheet tools detect the encoding.
func WriteTranslations(path string, records []domain.TranslationRecord) error {
	if _, err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}

	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		if _, err := w.Write(fileutil.BOM); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return err
		}
		for _, r := range records {
			if err := cw.Write([]string{r.Form, r.Field, r.Language, r.Text}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("tabular: write %s: %w", path, err)
	}
	return nil
}

// ReadResult holds the rows of a translations file and read statistics.
type ReadResult struct {
	Records []domain.TranslationRecord
	// Malformed counts rows without exactly four columns; they are skipped.
	Malformed int
}

// ReadTranslations loads every row of the translations file at path.
// A missing or unreadable file, or one without the expected header, is
// reported as domain.ErrMissingData.
func ReadTranslations(path string, log *slog.Logger) (ReadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ReadResult{}, domain.NewMissingDataError("translations file %s does not exist", path)
		}
		return ReadResult{}, domain.NewMissingDataError("read translations file %s: %v", path, err)
	}
	data, _ = fileutil.StripBOM(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return ReadResult{}, domain.NewMissingDataError("translations file %s is empty", path)
	}
	if err != nil {
		return ReadResult{}, domain.NewMissingDataError("translations file %s: %v", path, err)
	}
	if !slices.Equal(header, Header) {
		return ReadResult{}, domain.NewMissingDataError("translations file %s: header %v, want %v", path, header, Header)
	}

	var result ReadResult
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ReadResult{}, domain.NewMissingDataError("translations file %s: %v", path, err)
		}
		if len(row) != len(Header) {
			line, _ := r.FieldPos(0)
			field := ""
			if len(row) > 0 {
				field = row[0]
			}
			log.Warn("skipping malformed translations row",
				slog.String("path", path),
				slog.Int("line", line),
				slog.String("first_column", field),
				slog.Int("columns", len(row)),
			)
			result.Malformed++
			continue
		}
		result.Records = append(result.Records, domain.TranslationRecord{
			Form:     row[0],
			Field:    row[1],
			Language: row[2],
			Text:     row[3],
		})
	}
	return result, nil
}

// LatestTranslationsFile returns the newest *-translations.csv in dir.
// Timestamped names sort chronologically, so the greatest name wins.
func LatestTranslationsFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+translationsSuffix))
	if err != nil {
		return "", fmt.Errorf("tabular: glob %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", domain.NewMissingDataError("no *%s file found in %s; run the extraction first", translationsSuffix, dir)
	}
	slices.Sort(matches)
	return matches[len(matches)-1], nil
}
