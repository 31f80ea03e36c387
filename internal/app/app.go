package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/adapter/provider/redcap"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/adapter/tabular"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/app/extractor"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/app/merger"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/config"
)

// Extract reads the legacy project credentials named in cfg, fetches the
// legacy translations, and writes them to a new translations file under
// the output directory.
func Extract(ctx context.Context, cfg *config.Config, checkCertificate bool, logger *slog.Logger) (extractor.Result, error) {
	logger.Info("starting extraction", slog.String("version", BuildVersion()))

	secrets, err := config.LoadSecrets(cfg.Paths.SecretsFile)
	if err != nil {
		return extractor.Result{}, err
	}

	src, err := redcap.NewProvider(redcap.Options{
		URL:              secrets.URL,
		Token:            secrets.APIToken,
		CheckCertificate: checkCertificate,
		Timeout:          cfg.API.Timeout,
		UserAgent:        cfg.API.UserAgent,
	}, logger)
	if err != nil {
		return extractor.Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.API.Timeout)
	defer cancel()

	return extractor.Run(ctx, src, extractor.Options{OutputDir: cfg.Paths.OutputDir}, logger)
}

// MigrateOptions holds the per-invocation merge arguments.
type MigrateOptions struct {
	TemplatePath     string
	Language         string
	OutputPath       string
	TranslationsPath string
	Quote            merger.QuoteMode
	CheckCertificate bool
	SkipExtract      bool
	FillEmptyOnly    bool
}

// Migrate runs a fresh extraction followed by a merge into the MLM template.
// Extraction is skipped when SkipExtract is set or an explicit translations
// file is given; the merge then uses that file or the newest one on disk.
// The language is resolved before any network call.
func Migrate(ctx context.Context, cfg *config.Config, opts MigrateOptions, logger *slog.Logger) (merger.Result, error) {
	languages, err := tabular.LoadLanguages(cfg.Paths.LanguagesFile)
	if err != nil {
		return merger.Result{}, err
	}
	logger.Debug("loaded language table",
		slog.String("path", cfg.Paths.LanguagesFile),
		slog.Int("languages", languages.Len()),
	)
	if _, err := languages.Resolve(opts.Language); err != nil {
		return merger.Result{}, err
	}

	translations := opts.TranslationsPath
	if !opts.SkipExtract && translations == "" {
		extracted, err := Extract(ctx, cfg, opts.CheckCertificate, logger)
		if err != nil {
			return merger.Result{}, fmt.Errorf("extract: %w", err)
		}
		translations = extracted.Path
	}

	result, err := merger.Run(merger.Options{
		TemplatePath:     opts.TemplatePath,
		Language:         opts.Language,
		OutputPath:       opts.OutputPath,
		OutputDir:        cfg.Paths.OutputDir,
		TranslationsPath: translations,
		Quote:            opts.Quote,
		FillEmptyOnly:    opts.FillEmptyOnly,
		Languages:        languages,
	}, logger)
	if err != nil {
		return result, fmt.Errorf("merge: %w", err)
	}
	return result, nil
}
