// Package config loads hsmgen's optional defaults file: the default output
// language, namespace base, type prefix, and log level a project can pin
// once instead of repeating on every generate invocation.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds hsmgen's defaults. Precedence: CLI flags > environment
// variables > config file > these defaults.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig holds defaults for the generate subcommand.
type GenerateConfig struct {
	Language      string `toml:"language"`       // cpp, rust, or python
	NamespaceBase string `toml:"namespace_base"` // C++ namespace / Rust module path prefix
	TypePrefix    string `toml:"type_prefix"`    // prefix applied to the four emitted enums
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Load reads defaults from a TOML config file and environment variables,
// layered on top of hard-coded defaults. The config file is optional; its
// absence is not an error.
//
// Config file search order (first found wins):
//  1. configPath, if non-empty (from --config)
//  2. HSMGEN_CONFIG environment variable
//  3. ./hsmgen.toml in the current directory
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Generate: GenerateConfig{
			Language: "cpp",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(explicit string) error {
	path := resolveConfigPath(explicit)
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("HSMGEN_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("hsmgen.toml"); err == nil {
		return "hsmgen.toml"
	}
	return ""
}

func (c *Config) applyEnv() {
	envOverride("HSMGEN_LANGUAGE", &c.Generate.Language)
	envOverride("HSMGEN_NAMESPACE_BASE", &c.Generate.NamespaceBase)
	envOverride("HSMGEN_TYPE_PREFIX", &c.Generate.TypePrefix)
	envOverride("HSMGEN_LOG_LEVEL", &c.Log.Level)
}

func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
