// Package merger fills an MLM template exported from the new REDCap project
// with the translations extracted from the legacy module.
package merger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/adapter/tabular"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/pkg/fileutil"
)

// Options configures one merge.
type Options struct {
	TemplatePath string
	// Language is a short code, English name, or native name.
	Language string
	// OutputPath overrides <OutputDir>/<timestamp>-<code>-output.json.
	OutputPath string
	OutputDir  string
	// TranslationsPath overrides the newest translations file in OutputDir.
	TranslationsPath string
	Quote            QuoteMode
	// FillEmptyOnly keeps slots that already hold a value.
	FillEmptyOnly bool
	Languages     *domain.LanguageTable
	// Now stamps the default output name; defaults to time.Now.
	Now func() time.Time
}

// Result holds merge statistics.
type Result struct {
	Language         domain.LanguageEntry
	TranslationsPath string
	Path             string
	Records          int
	Malformed        int
	UnknownLanguage  int
	Duplicates       int
	Slots            int
	Translated       int
	Missing          int
	Kept             int
}

// Run resolves the language, loads the translations and the template, fills
// every matching slot, and writes the result. The output file is written
// only after every step succeeded.
func Run(opts Options, log *slog.Logger) (Result, error) {
	var result Result

	if !strings.EqualFold(filepath.Ext(opts.TemplatePath), ".json") {
		return result, domain.NewConfigurationError("MLM template must have a .json extension: %s", opts.TemplatePath)
	}

	lang, err := opts.Languages.Resolve(opts.Language)
	if err != nil {
		return result, err
	}
	result.Language = lang

	result.Path = opts.OutputPath
	if result.Path == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		result.Path = filepath.Join(opts.OutputDir, OutputFileName(now(), lang.ShortCode))
		log.Info("no output file specified; using default", slog.String("path", result.Path))
	}
	if samePath(opts.TemplatePath, result.Path) {
		return result, domain.NewConfigurationError("template and output file must be different: %s", opts.TemplatePath)
	}

	result.TranslationsPath = opts.TranslationsPath
	if result.TranslationsPath == "" {
		if result.TranslationsPath, err = tabular.LatestTranslationsFile(opts.OutputDir); err != nil {
			return result, err
		}
	}
	read, err := tabular.ReadTranslations(result.TranslationsPath, log)
	if err != nil {
		return result, err
	}
	result.Malformed = read.Malformed
	log.Info("loaded translations",
		slog.String("path", result.TranslationsPath),
		slog.Int("rows", len(read.Records)),
	)

	idx, stats := BuildIndex(read.Records, opts.Languages, log)
	result.Records = stats.Records
	result.UnknownLanguage = stats.UnknownLanguage
	result.Duplicates = stats.Duplicates

	data, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, domain.NewConfigurationError("MLM template %s does not exist", opts.TemplatePath)
		}
		return result, domain.NewConfigurationError("read MLM template %s: %v", opts.TemplatePath, err)
	}
	tpl, err := ParseTemplate(data, log)
	if err != nil {
		return result, fmt.Errorf("%s: %w", opts.TemplatePath, err)
	}
	log.Info("loaded template",
		slog.String("path", opts.TemplatePath),
		slog.Int("entries", len(tpl.Entries)),
		slog.Int("slots", tpl.SlotCount()),
	)

	filled, fill, err := Fill(tpl, idx, lang.ShortCode, opts.Quote, opts.FillEmptyOnly)
	if err != nil {
		return result, err
	}
	result.Slots = fill.Slots
	result.Translated = fill.Translated
	result.Missing = fill.Missing
	result.Kept = fill.Kept

	if err := writeOutput(result.Path, filled, tpl.bom, log); err != nil {
		return result, err
	}

	log.Info("merge complete",
		slog.String("language", lang.ShortCode),
		slog.String("quotes", opts.Quote.String()),
		slog.Int("slots", result.Slots),
		slog.Int("translated", result.Translated),
		slog.Int("missing", result.Missing),
		slog.Int("kept", result.Kept),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("unknown_language_rows", result.UnknownLanguage),
		slog.String("path", result.Path),
	)
	return result, nil
}

// FillStats counts slot outcomes.
type FillStats struct {
	Slots      int
	Translated int
	Missing    int
	Kept       int
}

// Fill returns the template bytes with every slot that has a translation in
// code replaced. Slots without a translation stay untouched. With
// fillEmptyOnly, slots that already carry a value are kept as well.
func Fill(tpl *Template, idx *Index, code string, mode QuoteMode, fillEmptyOnly bool) ([]byte, FillStats, error) {
	out := append([]byte(nil), tpl.raw...)
	var stats FillStats

	for _, e := range tpl.Entries {
		for _, s := range e.Slots {
			stats.Slots++
			text, ok := idx.Lookup(e.Form, s.Field, code)
			if !ok {
				stats.Missing++
				continue
			}
			if fillEmptyOnly && s.Current != "" {
				stats.Kept++
				continue
			}
			var err error
			out, err = sjson.SetRawBytes(out, s.Path, mode.Literal(text))
			if err != nil {
				return nil, stats, fmt.Errorf("set %s: %w", s.Path, err)
			}
			stats.Translated++
		}
	}
	return out, stats, nil
}

// OutputFileName returns the default filled-template name for t and code.
func OutputFileName(t time.Time, code string) string {
	return t.Format(tabular.TimestampLayout) + "-" + strings.ToLower(code) + "-output.json"
}

func writeOutput(path string, data []byte, bom bool, log *slog.Logger) error {
	if created, err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("merger: %w", err)
	} else if created {
		log.Info("created directory", slog.String("path", filepath.Dir(path)))
	}
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		if bom {
			if _, err := w.Write(fileutil.BOM); err != nil {
				return err
			}
		}
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("merger: write %s: %w", path, err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
