package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ptxxdxxd/ascii-telescope/internal/render"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
)

// Config holds all configuration for the telescope.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Display DisplayConfig `yaml:"display"`
	Archive ArchiveConfig `yaml:"archive"`
}

// FetchConfig controls the refresh cycle and the source catalog.
type FetchConfig struct {
	RefreshInterval Duration       `yaml:"refresh_interval"`
	SourceTimeout   Duration       `yaml:"source_timeout"`
	Sources         []solar.Source `yaml:"sources"`
}

// DisplayConfig controls the rendered frame geometry and palette.
type DisplayConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	CharacterRamp string  `yaml:"character_ramp"`
	CropFraction  float64 `yaml:"crop_fraction"`
}

// ArchiveConfig controls saving of the fetched original images.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Duration wraps time.Duration for YAML unmarshalling from strings like "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config matching the classic telescope behavior:
// 5 minute refresh, 80×24 output, the standard ramp, central-square crop,
// and the built-in source catalog.
func Defaults() Config {
	return Config{
		Fetch: FetchConfig{
			RefreshInterval: Duration{5 * time.Minute},
			SourceTimeout:   Duration{30 * time.Second},
			Sources:         solar.DefaultCatalog(),
		},
		Display: DisplayConfig{
			Width:         80,
			Height:        24,
			CharacterRamp: render.DefaultRamp,
			CropFraction:  1.0,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Dir:     "solar_photos",
		},
	}
}

// Load reads the config file and merges with defaults.
// Missing file is not an error — defaults are used silently.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// RenderConfig converts the display section into the renderer's config.
func (c Config) RenderConfig() render.Config {
	return render.Config{
		Width:        c.Display.Width,
		Height:       c.Display.Height,
		Ramp:         c.Display.CharacterRamp,
		CropFraction: c.Display.CropFraction,
	}
}

func (c Config) validate() error {
	ri := c.Fetch.RefreshInterval.Duration
	if ri < 30*time.Second || ri > time.Hour {
		return fmt.Errorf("refresh_interval must be between 30s and 1h, got %s", ri)
	}

	st := c.Fetch.SourceTimeout.Duration
	if st < time.Second || st > ri {
		return fmt.Errorf("source_timeout must be between 1s and refresh_interval (%s), got %s", ri, st)
	}

	if len(c.Fetch.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for i, s := range c.Fetch.Sources {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("source %d is missing a name or url", i)
		}
	}

	if c.Display.Width < 2 || c.Display.Height < 2 {
		return fmt.Errorf("display size must be at least 2x2, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.CharacterRamp == "" {
		return fmt.Errorf("character_ramp must not be empty")
	}
	if c.Display.CropFraction <= 0 || c.Display.CropFraction > 1 {
		return fmt.Errorf("crop_fraction must be in (0, 1], got %g", c.Display.CropFraction)
	}

	if c.Archive.Enabled && c.Archive.Dir == "" {
		return fmt.Errorf("archive.dir is required when archiving is enabled")
	}

	return nil
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "telescope", "config.yml")
}
