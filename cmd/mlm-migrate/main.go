// Command mlm-migrate moves translations from the legacy Multilingual module
// into a Multi-Language Management import file. It extracts the legacy
// translations from the old project (unless --skip-extract is given), then
// fills a JSON template exported from MLM for one language.
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
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "mlm-migrate:", err)
		os.Exit(1)
	}
	if opts.version {
		fmt.Println(app.BuildVersion())
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mlm-migrate:", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.Migrate(ctx, cfg, opts.migrate, logger)
	if err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "mlm-migrate:", err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d of %d slots translated)\n", result.Path, result.Translated, result.Slots)
}
