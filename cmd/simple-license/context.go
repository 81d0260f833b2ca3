package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/tendant/simple-license/internal/logging"
	"github.com/tendant/simple-license/pkg/simplelicense/config"
)

const defaultConfigFile = "simple-license.toml"

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := defaultConfigFile
		optional := true
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
			optional = false
		}

		opts := []config.Option{
			config.WithFile(path, optional),
			config.WithEnv(),
		}
		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			level := *c.logLevelFlag
			opts = append(opts, config.WithOverrides(func(cfg *config.Config) {
				cfg.Log.Level = level
			}))
		}

		cfg, err := config.Load(opts...)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(cfg.LogLevel(), cfg.Log.Format, w)
}
