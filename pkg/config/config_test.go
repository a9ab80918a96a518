package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return f
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.toml")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(missingFile(t), nil)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Script != "" {
		t.Errorf("Expected empty script, got %q", cfg.Script)
	}
	if cfg.Format != "text" {
		t.Errorf("Expected format text, got %q", cfg.Format)
	}
	if !cfg.Color {
		t.Error("Expected color enabled by default")
	}
	if cfg.Watch {
		t.Error("Expected watch disabled by default")
	}
	if cfg.LogFormat != "compact" {
		t.Errorf("Expected log format compact, got %q", cfg.LogFormat)
	}
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "script = \"from-file.toml\"\nformat = \"json\"\ncolor = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := load(path, nil)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Script != "from-file.toml" || cfg.Format != "json" || cfg.Color {
		t.Errorf("Expected file values, got %+v", cfg)
	}

	// Env beats file
	t.Setenv("SOCIALGRAPH_SCRIPT", "from-env.toml")
	t.Setenv("SOCIALGRAPH_LOG_FORMAT", "json")
	cfg, err = load(path, nil)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Script != "from-env.toml" {
		t.Errorf("Expected env script, got %q", cfg.Script)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected env log format json, got %q", cfg.LogFormat)
	}

	// Flags beat env, unset flags leave env and file alone
	cfg, err = load(path, newFlagSet(t, "--script", "from-flag.toml", "-vv"))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Script != "from-flag.toml" {
		t.Errorf("Expected flag script, got %q", cfg.Script)
	}
	if cfg.Format != "json" {
		t.Errorf("Expected file format to survive unset flag, got %q", cfg.Format)
	}
	if cfg.VerboseCnt != 2 {
		t.Errorf("Expected verbose count 2, got %d", cfg.VerboseCnt)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := load(missingFile(t), newFlagSet(t, "--format", "yaml"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	_, err = load(missingFile(t), newFlagSet(t, "--log-format", "xml"))
	if !errors.Is(err, ErrUnknownLogFormat) {
		t.Errorf("Expected ErrUnknownLogFormat, got %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("format = \"json\nscript = ["), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := load(path, nil); err == nil {
		t.Error("Expected error for malformed config file, got nil")
	}
}
