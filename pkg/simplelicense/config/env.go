package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// EnvPrefix prefixes every environment variable read by WithEnv
const EnvPrefix = "SIMPLE_LICENSE_"

// envConfig lists the variables WithEnv reads. Unset or empty variables
// leave the current value alone.
type envConfig struct {
	Concurrency int    `env:"SIMPLE_LICENSE_CONCURRENCY"`
	Locale      string `env:"SIMPLE_LICENSE_LOCALE"`
	LogLevel    string `env:"SIMPLE_LICENSE_LOG_LEVEL"`
	LogFormat   string `env:"SIMPLE_LICENSE_LOG_FORMAT"`
	OutputType  string `env:"SIMPLE_LICENSE_OUTPUT_TYPE"`
	OutputDir   string `env:"SIMPLE_LICENSE_OUTPUT_DIR"`

	DefaultTitle       string   `env:"SIMPLE_LICENSE_DEFAULT_TITLE"`
	DefaultAuthors     []string `env:"SIMPLE_LICENSE_DEFAULT_AUTHORS" env-separator:","`
	DefaultInstitution string   `env:"SIMPLE_LICENSE_DEFAULT_INSTITUTION"`
	DefaultWebsite     string   `env:"SIMPLE_LICENSE_DEFAULT_WEBSITE"`
	DefaultContact     string   `env:"SIMPLE_LICENSE_DEFAULT_CONTACT"`
	DefaultSource      string   `env:"SIMPLE_LICENSE_DEFAULT_SOURCE"`

	Title        string   `env:"SIMPLE_LICENSE_TITLE"`
	Authors      []string `env:"SIMPLE_LICENSE_AUTHORS" env-separator:","`
	Institution  string   `env:"SIMPLE_LICENSE_INSTITUTION"`
	Website      string   `env:"SIMPLE_LICENSE_WEBSITE"`
	Contact      string   `env:"SIMPLE_LICENSE_CONTACT"`
	Source       string   `env:"SIMPLE_LICENSE_SOURCE"`
	DateFormat   string   `env:"SIMPLE_LICENSE_DATE_FORMAT"`
	TemplateFile string   `env:"SIMPLE_LICENSE_TEMPLATE_FILE"`
}

// WithEnv applies environment variable overrides.
//
//	SIMPLE_LICENSE_CONCURRENCY, SIMPLE_LICENSE_LOCALE
//	SIMPLE_LICENSE_LOG_LEVEL, SIMPLE_LICENSE_LOG_FORMAT
//	SIMPLE_LICENSE_OUTPUT_TYPE, SIMPLE_LICENSE_OUTPUT_DIR
//	SIMPLE_LICENSE_DEFAULT_{TITLE,AUTHORS,INSTITUTION,WEBSITE,CONTACT,SOURCE}
//	SIMPLE_LICENSE_{TITLE,AUTHORS,INSTITUTION,WEBSITE,CONTACT,SOURCE}
//	SIMPLE_LICENSE_DATE_FORMAT, SIMPLE_LICENSE_TEMPLATE_FILE
//
// Author lists are comma separated.
func WithEnv() Option {
	return func(c *Config) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}

		if env.Concurrency != 0 {
			c.Concurrency = env.Concurrency
		}
		setString(&c.Locale, env.Locale)
		setString(&c.Log.Level, env.LogLevel)
		setString(&c.Log.Format, env.LogFormat)
		setString(&c.Output.Type, env.OutputType)
		setString(&c.Output.Dir, env.OutputDir)

		setString(&c.Defaults.Title, env.DefaultTitle)
		setStrings(&c.Defaults.Authors, env.DefaultAuthors)
		setString(&c.Defaults.Institution, env.DefaultInstitution)
		setString(&c.Defaults.Website, env.DefaultWebsite)
		setString(&c.Defaults.Contact, env.DefaultContact)
		setString(&c.Defaults.Source, env.DefaultSource)

		setString(&c.Profile.Title, env.Title)
		setStrings(&c.Profile.Authors, env.Authors)
		setString(&c.Profile.Institution, env.Institution)
		setString(&c.Profile.Website, env.Website)
		setString(&c.Profile.Contact, env.Contact)
		setString(&c.Profile.Source, env.Source)
		if env.DateFormat != "" {
			c.Profile.DateFormat = simplelicense.DateFormat(env.DateFormat)
		}
		setString(&c.Profile.TemplateFile, env.TemplateFile)
		return nil
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setStrings(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}
