package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/config"
	fssink "github.com/tendant/simple-license/pkg/simplelicense/sink/fs"
	memorysink "github.com/tendant/simple-license/pkg/simplelicense/sink/memory"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, config.OutputFS, cfg.Output.Type)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, simplelicense.DefaultTitle, cfg.Defaults.Title)
	assert.Equal(t, simplelicense.DateFormatLocale, cfg.Profile.DateFormat)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		override func(*config.Config)
		wantErr  string
	}{
		{"zero concurrency", func(c *config.Config) { c.Concurrency = 0 }, "concurrency"},
		{"bad locale", func(c *config.Config) { c.Locale = "not a locale!" }, "invalid locale"},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad output type", func(c *config.Config) { c.Output.Type = "s3" }, "output.type"},
		{"missing output dir", func(c *config.Config) { c.Output.Dir = " " }, "output.dir"},
		{"bad date format", func(c *config.Config) { c.Profile.DateFormat = "dd/mm/yy" }, "date_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(config.WithOverrides(tt.override))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithTOML(t *testing.T) {
	cfg, err := config.Load(config.WithTOML(`
concurrency = 2
locale = "de-DE"

[log]
level = "debug"
format = "json"
events = true

[output]
type = "memory"

[defaults]
institution = "Acme Labs"

[profile]
authors = ["Ada Lovelace", "Alan Turing"]
date_format = "d-m-yyyy"
`))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Log.Events)
	assert.Equal(t, config.OutputMemory, cfg.Output.Type)
	assert.Equal(t, "Acme Labs", cfg.Defaults.Institution)
	assert.Equal(t, simplelicense.DefaultTitle, cfg.Defaults.Title)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, cfg.Profile.Authors)
	assert.Equal(t, simplelicense.DateFormatDMY, cfg.Profile.DateFormat)
}

func TestWithTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := config.Load(config.WithTOML("[profile]\nauthor = \"Ada\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author")
}

func TestWithTOMLRejectsSyntaxErrors(t *testing.T) {
	_, err := config.Load(config.WithTOML("concurrency = "))
	assert.Error(t, err)
}

func TestWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simple-license.toml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency = 8\n"), 0o644))

	cfg, err := config.Load(config.WithFile(path, false))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)

	missing := filepath.Join(dir, "missing.toml")
	cfg, err = config.Load(config.WithFile(missing, true))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)

	_, err = config.Load(config.WithFile(missing, false))
	assert.Error(t, err)
}

func TestWithEnv(t *testing.T) {
	t.Setenv("SIMPLE_LICENSE_CONCURRENCY", "3")
	t.Setenv("SIMPLE_LICENSE_LOG_LEVEL", "warn")
	t.Setenv("SIMPLE_LICENSE_OUTPUT_TYPE", "memory")
	t.Setenv("SIMPLE_LICENSE_DEFAULT_TITLE", "Archive Copy")
	t.Setenv("SIMPLE_LICENSE_AUTHORS", "Ada Lovelace,Alan Turing")
	t.Setenv("SIMPLE_LICENSE_INSTITUTION", "Acme Labs")
	t.Setenv("SIMPLE_LICENSE_DATE_FORMAT", "yyyy-m-d")

	cfg, err := config.Load(config.WithTOML("concurrency = 9\n[profile]\nwebsite = \"https://acme.test\"\n"), config.WithEnv())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	assert.Equal(t, config.OutputMemory, cfg.Output.Type)
	assert.Equal(t, "Archive Copy", cfg.Defaults.Title)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, cfg.Profile.Authors)
	assert.Equal(t, "Acme Labs", cfg.Profile.Institution)
	assert.Equal(t, "https://acme.test", cfg.Profile.Website)
	assert.Equal(t, simplelicense.DateFormatYMD, cfg.Profile.DateFormat)
}

func TestBuildSink(t *testing.T) {
	cfg, err := config.Load(config.WithOverrides(func(c *config.Config) { c.Output.Type = config.OutputMemory }))
	require.NoError(t, err)
	sink, err := cfg.BuildSink()
	require.NoError(t, err)
	assert.IsType(t, &memorysink.Sink{}, sink)

	dir := filepath.Join(t.TempDir(), "archives")
	cfg, err = config.Load(config.WithOverrides(func(c *config.Config) { c.Output.Dir = dir }))
	require.NoError(t, err)
	sink, err = cfg.BuildSink()
	require.NoError(t, err)
	require.IsType(t, &fssink.Sink{}, sink)
	assert.DirExists(t, dir)
}

func TestBuildProfileStore(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "license.html")
	require.NoError(t, os.WriteFile(templatePath, []byte("<p>{filename} by {authorsList}</p>"), 0o644))

	cfg, err := config.Load(config.WithTOML(`
[defaults]
authors = ["Fallback Author"]
contact = "help@acme.test"

[profile]
title = "Field Recording"
template = "ignored"
template_file = "`+filepath.ToSlash(templatePath)+`"
`))
	require.NoError(t, err)

	store, err := cfg.BuildProfileStore()
	require.NoError(t, err)

	profile := store.Snapshot()
	assert.Equal(t, "Field Recording", profile.Title)
	assert.Equal(t, []string{"Fallback Author"}, profile.Authors)
	assert.Equal(t, "help@acme.test", profile.Contact)
	assert.Equal(t, "<p>{filename} by {authorsList}</p>", profile.LicenseTemplate)
}

func TestBuildProfileStoreMissingTemplateFile(t *testing.T) {
	cfg, err := config.Load(config.WithOverrides(func(c *config.Config) {
		c.Profile.TemplateFile = filepath.Join(t.TempDir(), "missing.html")
	}))
	require.NoError(t, err)

	_, err = cfg.BuildProfileStore()
	assert.Error(t, err)
}

func TestBuildPackager(t *testing.T) {
	cfg, err := config.Load(config.WithOverrides(func(c *config.Config) {
		c.Log.Events = true
		c.Defaults.Institution = "Acme Labs"
	}))
	require.NoError(t, err)

	packager, err := cfg.BuildPackager(slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	text := packager.RenderLicense("notes.txt", simplelicense.MetadataProfile{})
	assert.Contains(t, text, "License for notes.txt")
	assert.Contains(t, text, "Acme Labs")
}

func TestSampleConfig(t *testing.T) {
	cfg, err := config.Load(config.WithTOML(config.SampleConfig()))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, simplelicense.DateFormatLocale, cfg.Profile.DateFormat)

	path := filepath.Join(t.TempDir(), "nested", "simple-license.toml")
	require.NoError(t, config.CreateSample(path))
	cfg, err = config.Load(config.WithFile(path, false))
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Locale)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := config.Load(config.WithOverrides(func(c *config.Config) {
		c.Profile.Authors = []string{"Ada Lovelace"}
		c.Profile.DateFormat = simplelicense.DateFormatMYD
	}))
	require.NoError(t, err)

	data, err := cfg.Marshal()
	require.NoError(t, err)

	again, err := config.Load(config.WithTOML(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg.Concurrency, again.Concurrency)
	assert.Equal(t, cfg.Locale, again.Locale)
	assert.Equal(t, cfg.Output, again.Output)
	assert.Equal(t, cfg.Defaults.Title, again.Defaults.Title)
	assert.Equal(t, []string{"Ada Lovelace"}, again.Profile.Authors)
	assert.Equal(t, simplelicense.DateFormatMYD, again.Profile.DateFormat)
}
