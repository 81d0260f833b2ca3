package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// WithFile decodes a TOML file over the current values. Unknown keys are
// rejected. A missing file is an error unless optional is set.
func WithFile(path string, optional bool) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("open config: %w", err)
		}
		return decode(data, c)
	}
}

// WithTOML decodes TOML text over the current values.
func WithTOML(text string) Option {
	return func(c *Config) error {
		return decode([]byte(text), c)
	}
}

// WithOverrides applies fn to the configuration.
func WithOverrides(fn func(*Config)) Option {
	return func(c *Config) error {
		fn(c)
		return nil
	}
}

func decode(data []byte, c *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config: %s", strict.String())
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
