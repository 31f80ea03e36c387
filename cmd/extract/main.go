// Command extract fetches the legacy Multilingual translations from the old
// REDCap project and writes them to <output_dir>/<timestamp>-translations.csv.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/app"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/config"
)

func main() {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	skipCertCheck := fs.Bool("no-check-certificate", false, "do not verify the legacy project's TLS certificate")
	configPath := fs.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "extract:", err)
		os.Exit(1)
	}
	if *version {
		fmt.Println(app.BuildVersion())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "extract:", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.Extract(ctx, cfg, !*skipCertCheck, logger)
	if err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "extract:", err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("wrote %d translations to %s\n", result.Rows, result.Path)
}
