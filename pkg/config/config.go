package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// FileName is the optional config file read from the working directory
const FileName = "socialgraph.toml"

// EnvPrefix prefixes every environment override, e.g. SOCIALGRAPH_FORMAT=json
const EnvPrefix = "SOCIALGRAPH_"

var (
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// Config holds all configuration for the application
type Config struct {
	Script     string `koanf:"script"`
	Format     string `koanf:"format"`
	Color      bool   `koanf:"color"`
	Watch      bool   `koanf:"watch"`
	Verbosity  string `koanf:"verbosity"`
	VerboseCnt int    `koanf:"verbose"`
	LogFormat  string `koanf:"log-format"`
}

// RegisterFlags declares the command-line flags that Load understands
func RegisterFlags(f *pflag.FlagSet) {
	f.StringP("script", "s", "", "TOML script of people and friendships (default: built-in demo)")
	f.String("format", "text", "Listing format: text or json")
	f.Bool("color", true, "Colorize the listing when writing to a terminal")
	f.BoolP("watch", "w", false, "Re-run the script whenever it changes")
	f.String("verbosity", "", "Log level: trace, debug, info, warn or error")
	f.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	f.String("log-format", "compact", "Log format: compact or json")
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	return load(FileName, f)
}

func load(path string, f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"script":     "",
		"format":     "text",
		"color":      true,
		"watch":      false,
		"verbosity":  "",
		"verbose":    0,
		"log-format": "compact",
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// 3. Environment variables
	// SOCIALGRAPH_LOG_FORMAT maps to log-format
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the rest of the program cannot act on
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	switch c.LogFormat {
	case "compact", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}

	return nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
