// Package config loads layered application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/model"
)

// Config holds all configuration for the application.
type Config struct {
	Users      []string `koanf:"users"` // ordered "name=dir" entries
	Output     string   `koanf:"output"`
	MinCommon  int      `koanf:"min-common"`
	Port       int      `koanf:"port"`
	Watch      bool     `koanf:"watch"`
	Verbosity  string   `koanf:"verbosity"`
	VerboseCnt int      `koanf:"verbose"`
}

// UserSource names one user to analyze and the export directory to read.
type UserSource struct {
	Name string
	Dir  string
}

// Load loads configuration from defaults, config file, environment
// variables, and flags. Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"users":      []string{},
		"output":     "outputs",
		"min-common": 2,
		"port":       8080,
		"watch":      false,
		"verbosity":  "",
		"verbose":    0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional) - socialgraph.toml
	_ = k.Load(file.Provider("socialgraph.toml"), toml.Parser())

	// 3. Environment variables, prefix SOCIALGRAPH_
	// (e.g. SOCIALGRAPH_PORT=9090)
	if err := k.Load(env.Provider("SOCIALGRAPH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "SOCIALGRAPH_")), "_", "-")
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

	return &cfg, nil
}

// UserSources parses the configured user entries. Order is preserved: it
// is the analysis insertion order and decides union conflicts.
func (c *Config) UserSources() ([]UserSource, error) {
	sources := make([]UserSource, 0, len(c.Users))
	for _, entry := range c.Users {
		name, dir, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid user entry %q, expected name=dir", entry)
		}
		name = model.Normalize(name)
		dir = strings.TrimSpace(dir)
		if name == "" || dir == "" {
			return nil, fmt.Errorf("invalid user entry %q, expected name=dir", entry)
		}
		sources = append(sources, UserSource{Name: name, Dir: dir})
	}
	return sources, nil
}

// LogLevel maps the verbosity settings to a slog level. The named
// verbosity wins over the -v count.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Verbosity) {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	switch {
	case c.VerboseCnt >= 2:
		return logging.LevelTrace
	case c.VerboseCnt == 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
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
