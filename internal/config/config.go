// Package config loads the evs command's settings from an eventscript.toml or
// eventscript.yaml file, with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is the default for unknown extensions.
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// DefaultFilenames are tried in order by Discover.
var DefaultFilenames = []string{"eventscript.toml", "eventscript.yaml", "eventscript.yml"}

// Environment variables that override file values.
const (
	EnvOutputFormat = "EVS_OUTPUT_FORMAT"
	EnvLogLevel     = "EVS_LOG_LEVEL"
	EnvConfig       = "EVS_CONFIG"
)

// Config holds the complete evs configuration.
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`

	// Path is the file the configuration was read from, "" for defaults.
	Path string `toml:"-" yaml:"-"`
}

// ParserConfig selects grammar options.
type ParserConfig struct {
	LooseUnary bool `toml:"loose_unary" yaml:"loose_unary"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text | yaml
	Color  string `toml:"color" yaml:"color"`   // auto | always | never
}

// LogConfig controls the command's own logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // debug | info | warn | error
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Format: "text", Color: "auto"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads path, or discovers a file in the working directory when path is
// empty. A missing discovered file is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		found, ok := Discover(".")
		if !ok {
			cfg := Default()
			cfg.applyEnv(os.LookupEnv)
			return cfg, cfg.Validate()
		}
		path = found
	}
	return LoadFile(path)
}

// Discover returns the first of DefaultFilenames that exists in dir.
func Discover(dir string) (string, bool) {
	for _, name := range DefaultFilenames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LoadFile reads and validates one configuration file. Keys absent from the
// file keep their defaults.
func LoadFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DetectFormat determines the configuration format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes content over the defaults. Unknown keys are rejected so that
// typos do not pass silently.
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvOutputFormat); ok && v != "" {
		c.Output.Format = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	var errs []error
	if !oneOf(c.Output.Format, "text", "yaml") {
		errs = append(errs, fmt.Errorf("output.format: %q is not one of text, yaml", c.Output.Format))
	}
	if !oneOf(c.Output.Color, "auto", "always", "never") {
		errs = append(errs, fmt.Errorf("output.color: %q is not one of auto, always, never", c.Output.Color))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%q is not one of debug, info, warn, error", name)
	}
	return lvl, nil
}

// SlogLevel returns the configured log level; Validate has checked it.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := ParseLevel(c.Log.Level)
	return lvl
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
