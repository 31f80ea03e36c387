// Package extractor fetches the legacy Multilingual translations from a REDCap
// project and writes them to the timestamped translations CSV.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/adapter/tabular"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/provider"
)

// MetadataSource returns a project's data dictionary.
type MetadataSource interface {
	FetchMetadata(ctx context.Context) ([]provider.MetadataField, error)
}

// Options controls where the translations file is written.
type Options struct {
	// OutputDir receives <timestamp>-translations.csv when OutputPath is empty.
	OutputDir string
	// OutputPath overrides the generated file name.
	OutputPath string
	// Now stamps the generated file name; defaults to time.Now.
	Now func() time.Time
}

// Result holds extraction statistics.
type Result struct {
	Fields    int
	Annotated int
	Rows      int
	Skipped   int
	Path      string
}

// Run fetches metadata once, flattens every legacy tag into records, and
// writes them in API order. Nothing is written if the fetch fails.
func Run(ctx context.Context, src MetadataSource, opts Options, log *slog.Logger) (Result, error) {
	fields, err := src.FetchMetadata(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch metadata: %w", err)
	}
	log.Info("fetched legacy project metadata", slog.Int("fields", len(fields)))

	records, result := Flatten(fields, log)

	result.Path = opts.OutputPath
	if result.Path == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		result.Path = filepath.Join(opts.OutputDir, tabular.TranslationsFileName(now()))
	}

	if err := tabular.WriteTranslations(result.Path, records); err != nil {
		return result, err
	}

	if result.Rows == 0 {
		log.Warn("no translations found in legacy project", slog.Int("fields", result.Fields))
	}
	log.Info("extraction complete",
		slog.Int("fields", result.Fields),
		slog.Int("annotated", result.Annotated),
		slog.Int("rows", result.Rows),
		slog.Int("skipped", result.Skipped),
		slog.String("path", result.Path),
	)
	return result, nil
}

// Flatten converts metadata fields into translation records, one per
// non-empty text. Unparseable tags are logged and counted, never fatal.
func Flatten(fields []provider.MetadataField, log *slog.Logger) ([]domain.TranslationRecord, Result) {
	var (
		records []domain.TranslationRecord
		result  = Result{Fields: len(fields)}
	)

	for _, f := range fields {
		if !HasTranslations(f.Annotation) {
			continue
		}
		result.Annotated++

		recs, err := ParseField(f)
		if err != nil {
			skipped := countJoined(err)
			result.Skipped += skipped
			log.Warn("skipping unparseable translation tags",
				slog.String("form", f.FormName),
				slog.String("field", f.FieldName),
				slog.Int("skipped", skipped),
				slog.String("error", err.Error()),
			)
		}
		records = append(records, recs...)
	}

	result.Rows = len(records)
	return records, result
}

// countJoined returns the number of errors combined by errors.Join.
func countJoined(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
