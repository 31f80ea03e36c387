package main

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/app/merger"
)

func TestParseFlags_ShortAndLong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-j", "tpl.json", "-l", "es", "-o", "out.json", "-q"}},
		{"long", []string{"--json-template=tpl.json", "--language", "es", "--output-file", "out.json", "--escaped-double-quotes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			m := opts.migrate
			if m.TemplatePath != "tpl.json" || m.Language != "es" || m.OutputPath != "out.json" {
				t.Errorf("unexpected options: %+v", m)
			}
			if m.Quote != merger.QuoteEscape {
				t.Errorf("Quote = %v, want escape", m.Quote)
			}
			if !m.CheckCertificate {
				t.Error("certificate check should default to on")
			}
		})
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-j", "tpl.json", "-l", "Español", "--no-check-certificate", "--skip-extract"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	m := opts.migrate
	if m.Quote != merger.QuoteReplace {
		t.Errorf("Quote = %v, want replace", m.Quote)
	}
	if m.CheckCertificate {
		t.Error("--no-check-certificate should disable the check")
	}
	if !m.SkipExtract {
		t.Error("--skip-extract not set")
	}
	if m.FillEmptyOnly {
		t.Error("--fill-empty-only should default to off")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no template", []string{"-l", "es"}},
		{"no language", []string{"-j", "tpl.json"}},
		{"unknown flag", []string{"-j", "tpl.json", "-l", "es", "--bogus"}},
		{"positional", []string{"-j", "tpl.json", "-l", "es", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseFlags(tt.args); err == nil {
				t.Errorf("parseFlags(%v) = nil error", tt.args)
			}
		})
	}
}

func TestParseFlags_VersionAndHelp(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"--version"})
	if err != nil || !opts.version {
		t.Errorf("--version: opts.version=%v err=%v", opts.version, err)
	}

	if _, err := parseFlags([]string{"-h"}); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("-h: err = %v, want pflag.ErrHelp", err)
	}
}
