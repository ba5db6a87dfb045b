package main

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"stockwatch/internal/app"
	"stockwatch/internal/config"
	logx "stockwatch/pkg/logx"
)

type commandContext struct {
	configFlag  string
	envFileFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	logSvc  *logx.Service
	log     logx.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{envFileFlag: ".env"}
}

// ensureConfig loads the env file first so its values feed both the config
// path fallback and the secret overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := config.LoadDotEnv(c.envFileFlag); err != nil {
			c.configErr = err
			return
		}
		path := strings.TrimSpace(c.configFlag)
		if path == "" {
			path = strings.TrimSpace(os.Getenv(config.EnvConfigPath))
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() logx.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logx.NewConsole("info")
			return
		}
		c.logSvc, c.log = logx.NewService(app.LogConfig(cfg))
		for _, w := range cfg.Warnings {
			c.log.Warn("config: " + w)
		}
	})
	return c.log
}

func (c *commandContext) close() error {
	if c.logSvc == nil {
		return nil
	}
	return c.logSvc.Close()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
