package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/presets"
	fssink "github.com/tendant/simple-license/pkg/simplelicense/sink/fs"
	memorysink "github.com/tendant/simple-license/pkg/simplelicense/sink/memory"
)

//go:embed sample_config.toml
var sampleConfig string

// Output types accepted by output.type
const (
	OutputFS     = "fs"
	OutputMemory = "memory"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Concurrency: simplelicense.DefaultConcurrency,
		Locale:      simplelicense.DefaultLocale.String(),
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Output: OutputConfig{
			Type: OutputFS,
			Dir:  ".",
		},
		Defaults: simplelicense.DefaultMetadata{
			Title: simplelicense.DefaultTitle,
		},
		Profile: ProfileConfig{
			DateFormat: simplelicense.DateFormatLocale,
		},
	}
}

// Config is the effective configuration of the packaging tool
type Config struct {
	Concurrency int    `toml:"concurrency"`
	Locale      string `toml:"locale"`

	Log      LogConfig                     `toml:"log"`
	Output   OutputConfig                  `toml:"output"`
	Defaults simplelicense.DefaultMetadata `toml:"defaults"`
	Profile  ProfileConfig                 `toml:"profile"`
}

// LogConfig selects log verbosity and handler
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // auto, text, json
	Events bool   `toml:"events"` // log packaging events
}

// OutputConfig selects where finished archives go
type OutputConfig struct {
	Type string `toml:"type"` // "fs", "memory"
	Dir  string `toml:"dir"`
}

// ProfileConfig seeds the metadata profile. TemplateFile, when set, is read
// at build time and takes precedence over Template.
type ProfileConfig struct {
	Title        string                   `toml:"title"`
	Authors      []string                 `toml:"authors"`
	Institution  string                   `toml:"institution"`
	Website      string                   `toml:"website"`
	Contact      string                   `toml:"contact"`
	Source       string                   `toml:"source"`
	DateFormat   simplelicense.DateFormat `toml:"date_format"`
	Template     string                   `toml:"template"`
	TemplateFile string                   `toml:"template_file"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	if _, err := simplelicense.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'auto', 'text' or 'json', got %q", c.Log.Format)
	}

	switch c.Output.Type {
	case OutputFS:
		if strings.TrimSpace(c.Output.Dir) == "" {
			return errors.New("output.dir is required when output.type is 'fs'")
		}
	case OutputMemory:
	default:
		return fmt.Errorf("output.type must be 'fs' or 'memory', got %q", c.Output.Type)
	}

	if !c.Profile.DateFormat.Valid() {
		return fmt.Errorf("unknown profile.date_format %q", c.Profile.DateFormat)
	}

	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	return logLevels[strings.ToLower(c.Log.Level)]
}

// BuildPackager creates a Packager wired with the standard embedders
func (c *Config) BuildPackager(logger *slog.Logger) (simplelicense.Packager, error) {
	locale, err := simplelicense.ParseLocale(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	options := []simplelicense.Option{
		simplelicense.WithDefaults(c.Defaults),
		simplelicense.WithLocale(locale),
		simplelicense.WithConcurrency(c.Concurrency),
	}
	if logger != nil {
		options = append(options, simplelicense.WithLogger(logger))
	}

	if c.Log.Events {
		eventLogger := logger
		if eventLogger == nil {
			eventLogger = slog.Default()
		}
		options = append(options, simplelicense.WithEventSink(simplelicense.NewLogEventSink(eventLogger)))
	}

	return presets.NewPackager(options...)
}

// BuildSink creates the delivery sink selected by output.type
func (c *Config) BuildSink() (simplelicense.Sink, error) {
	switch c.Output.Type {
	case OutputMemory:
		return memorysink.New(), nil
	case OutputFS:
		sink, err := fssink.New(fssink.Config{BaseDir: c.Output.Dir})
		if err != nil {
			return nil, fmt.Errorf("failed to build fs sink: %w", err)
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unsupported output type: %s", c.Output.Type)
	}
}

// BuildProfileStore creates a ProfileStore seeded with the configured
// defaults and profile.
func (c *Config) BuildProfileStore() (*simplelicense.ProfileStore, error) {
	profile, err := c.Profile.MetadataProfile()
	if err != nil {
		return nil, err
	}
	store := simplelicense.NewProfileStore(c.Defaults)
	store.Set(profile)
	return store, nil
}

// MetadataProfile converts the profile section, reading TemplateFile if set.
func (p ProfileConfig) MetadataProfile() (simplelicense.MetadataProfile, error) {
	profile := simplelicense.MetadataProfile{
		Title:           p.Title,
		Authors:         append([]string(nil), p.Authors...),
		Institution:     p.Institution,
		Website:         p.Website,
		Contact:         p.Contact,
		Source:          p.Source,
		DateFormat:      p.DateFormat,
		LicenseTemplate: p.Template,
	}
	if p.TemplateFile != "" {
		data, err := os.ReadFile(p.TemplateFile)
		if err != nil {
			return simplelicense.MetadataProfile{}, fmt.Errorf("read template file: %w", err)
		}
		profile.LicenseTemplate = string(data)
	}
	return profile, nil
}

// SampleConfig returns the annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
