// Package config loads the optional clockface.yaml configuration and the
// CLOCKFACE_* environment overlay.
//
// Precedence, highest first: environment variables, clockface.yaml,
// compiled defaults.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/errors"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "clockface.yaml"

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CLOCKFACE_"

// Config represents the resolved CLI configuration.
type Config struct {
	App     AppConfig     `yaml:"app" koanf:"app"`
	Surface SurfaceConfig `yaml:"surface" koanf:"surface"`
	Log     LogConfig     `yaml:"log" koanf:"log"`

	// Clock holds the options used for clocks created without explicit
	// settings, including the one a fresh state file starts with.
	Clock clock.Options `yaml:"clock" koanf:"clock"`
}

// AppConfig contains application metadata and file locations.
type AppConfig struct {
	Name      string `yaml:"name,omitempty" koanf:"name"`
	StateFile string `yaml:"stateFile,omitempty" koanf:"state_file"`
	OutputDir string `yaml:"outputDir,omitempty" koanf:"output_dir"`
}

// SurfaceConfig is the pixel size of rendered frames.
type SurfaceConfig struct {
	Width  int `yaml:"width" koanf:"width"`
	Height int `yaml:"height" koanf:"height"`
}

// LogConfig selects the CLI log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			StateFile: "clocks.yaml",
			OutputDir: "frames",
		},
		Surface: SurfaceConfig{
			Width:  400,
			Height: 400,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Clock: clock.DefaultOptions(),
	}
}

// Load reads clockface.yaml from dir if present, applies the environment
// overlay and resolves derived defaults. Relative paths are made relative
// to dir.
func Load(dir string) (*Config, error) {
	cfg := defaults()

	if err := loadFile(dir, cfg); err != nil {
		return nil, errors.Wrap("config.Load", errors.KindConfig, err)
	}

	k := koanf.New(".")
	// CLOCKFACE_APP_STATE_FILE maps to app.state_file: the first underscore
	// after the prefix separates the section from the key.
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap("config.Load", errors.KindConfig, fmt.Errorf("load env vars: %w", err))
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap("config.Load", errors.KindConfig, fmt.Errorf("unmarshal config: %w", err))
	}

	if strings.TrimSpace(cfg.App.Name) == "" {
		cfg.App.Name = defaultAppName(dir)
	}
	cfg.App.StateFile = resolvePath(dir, cfg.App.StateFile)
	cfg.App.OutputDir = resolvePath(dir, cfg.App.OutputDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ClockStyle validates the configured clock options.
func (c *Config) ClockStyle() (clock.Style, error) {
	return clock.NewStyle(c.Clock)
}

func (c *Config) validate() error {
	if c.Surface.Width <= 0 {
		return errors.Positive("config.Load", "surface.width", float64(c.Surface.Width))
	}
	if c.Surface.Height <= 0 {
		return errors.Positive("config.Load", "surface.height", float64(c.Surface.Height))
	}
	if _, err := c.ClockStyle(); err != nil {
		return err
	}
	return nil
}

func loadFile(dir string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// defaultAppName uses the last element of the enclosing module path, or the
// directory name when dir has no go.mod.
func defaultAppName(dir string) string {
	base := filepath.Base(dir)
	if path, err := modulePath(dir); err == nil {
		if prefix, _, ok := module.SplitPathVersion(path); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "clockface"
	}
	return base
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
