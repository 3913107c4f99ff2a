package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"faultline/internal/config"
	"faultline/internal/logging"
	"faultline/internal/nrml"
)

type commandContext struct {
	configFlag      *string
	gridSpacingFlag *float64
	logLevelFlag    *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, gridSpacingFlag *float64, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		gridSpacingFlag: gridSpacingFlag,
		logLevelFlag:    logLevelFlag,
	}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if cmd != nil && cmd.Flags().Changed("grid-spacing") && c.gridSpacingFlag != nil {
			cfg.Reader.GridSpacing = *c.gridSpacingFlag
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig(nil)
	return cfg
}

// baseLogger builds the process logger from the [logging] section. Commands
// that skip config loading get a stderr logger at the flag level.
func (c *commandContext) baseLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg == nil {
			level := "info"
			if c.logLevelFlag != nil && *c.logLevelFlag != "" {
				level = *c.logLevelFlag
			}
			logger, err := logging.New(logging.Options{Level: level, Format: "console"})
			if err != nil {
				logger = logging.NewNop()
			}
			c.logger = logger
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			if logger == nil {
				logger = logging.NewNop()
			}
			logger.Warn("log file unavailable; logging to stderr only", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) componentLogger(component string) *slog.Logger {
	return logging.NewComponentLogger(c.baseLogger(), component)
}

// newReader builds a reader for path using the [reader] settings.
func (c *commandContext) newReader(path string) (*nrml.Reader, error) {
	cfg := c.configValue()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return nrml.NewReader(path, cfg.Reader.GridSpacing,
		nrml.WithLogger(c.baseLogger()),
		nrml.WithStrictMarkers(cfg.Reader.StrictMarkers),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
