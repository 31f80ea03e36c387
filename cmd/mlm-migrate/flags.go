package main

import (
	"errors"
	"os"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/app"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/app/merger"
)

type cliOptions struct {
	migrate    app.MigrateOptions
	configPath string
	version    bool
}

func parseFlags(args []string) (cliOptions, error) {
	var (
		opts          cliOptions
		escapeQuotes  bool
		skipCertCheck bool
	)

	fs := pflag.NewFlagSet("mlm-migrate", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.SortFlags = false

	fs.StringVarP(&opts.migrate.TemplatePath, "json-template", "j", "", "MLM JSON template exported for the target language (required)")
	fs.StringVarP(&opts.migrate.Language, "language", "l", "", "target language: short code, English name, or native name (required)")
	fs.StringVarP(&opts.migrate.OutputPath, "output-file", "o", "", "filled JSON file (default <output_dir>/<timestamp>-<code>-output.json)")
	fs.BoolVarP(&escapeQuotes, "escaped-double-quotes", "q", false, `write double quotes as \" instead of replacing them with '`)
	fs.BoolVar(&skipCertCheck, "no-check-certificate", false, "do not verify the legacy project's TLS certificate")
	fs.StringVar(&opts.migrate.TranslationsPath, "translations-file", "", "merge this translations CSV instead of extracting a new one")
	fs.BoolVar(&opts.migrate.SkipExtract, "skip-extract", false, "merge the newest translations CSV in the output directory")
	fs.BoolVar(&opts.migrate.FillEmptyOnly, "fill-empty-only", false, "keep template slots that already hold a translation")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return opts, errors.New("unexpected arguments: " + fs.Arg(0))
	}
	if opts.migrate.TemplatePath == "" {
		return opts, errors.New("-j/--json-template is required")
	}
	if opts.migrate.Language == "" {
		return opts, errors.New("-l/--language is required")
	}

	opts.migrate.CheckCertificate = !skipCertCheck
	if escapeQuotes {
		opts.migrate.Quote = merger.QuoteEscape
	}
	return opts, nil
}
