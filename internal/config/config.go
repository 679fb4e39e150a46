// Package config loads blobposter settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, environment
// variables, command-line flags. Flags are applied by the CLI after Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/render"
)

const (
	// AppName is used for the config directory.
	AppName = "blobposter"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"

	// DefaultListen is the browser UI address.
	DefaultListen = "127.0.0.1:8501"
)

// Environment variables that override file settings.
const (
	EnvListen        = "BLOBPOSTER_LISTEN"
	EnvMetrics       = "BLOBPOSTER_METRICS"
	EnvMetricsListen = "BLOBPOSTER_METRICS_LISTEN"
)

// Config is the full application configuration.
type Config struct {
	Listen  string `toml:"listen"`
	Metrics bool   `toml:"metrics"`
	// MetricsListen serves /metrics on its own address instead of the UI
	// listener. Setting it turns metrics on.
	MetricsListen string `toml:"metrics_listen"`
	Poster        Poster `toml:"poster"`
	Log           Log    `toml:"log"`
}

// Poster holds the defaults for generated posters.
type Poster struct {
	Width    int    `toml:"width"`
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Palette  string `toml:"palette"`
	Style    string `toml:"style"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen: DefaultListen,
		Poster: Poster{
			Width:    pipeline.DefaultWidth,
			Title:    render.DefaultTitle,
			Subtitle: render.DefaultSubtitle,
			Palette:  pipeline.DefaultPalette,
			Style:    pipeline.DefaultStyle,
		},
		Log: Log{Level: "info"},
	}
}

// Dir returns the config directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path means the default location, which may
// be missing. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	if err := cfg.decodeFile(path); err != nil {
		switch {
		case !explicit && os.IsNotExist(err):
		case errors.GetCode(err) != "":
			return cfg, err
		default:
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides settings from environment variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := getenv(EnvMetrics); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", EnvMetrics, v)
		}
		c.Metrics = b
	}
	if v := getenv(EnvMetricsListen); v != "" {
		c.MetricsListen = v
	}
	return nil
}

// Validate checks that every setting is usable. Unknown style names are
// allowed and fall back to minimal at generation time.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "listen address is empty")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		return errors.New(errors.ErrCodeInvalidConfig, "metrics_listen must differ from listen")
	}
	if err := pipeline.ValidateWidth(c.Poster.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "poster.width")
	}
	if err := pipeline.ValidatePalette(c.Poster.Palette); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "poster.palette")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// MetricsEnabled reports whether metrics are collected.
func (c Config) MetricsEnabled() bool {
	return c.Metrics || c.MetricsListen != ""
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// PipelineOptions returns pipeline options prefilled from the poster
// section.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Palette:  c.Poster.Palette,
		Style:    c.Poster.Style,
		Width:    c.Poster.Width,
		Title:    c.Poster.Title,
		Subtitle: c.Poster.Subtitle,
	}
}
