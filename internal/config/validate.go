package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateReader(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateReader() error {
	spacing := c.Reader.GridSpacing
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) || spacing <= 0 {
		return errors.New("reader.grid_spacing must be a positive number of km")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers < 1 || c.Scan.Workers > maxScanWorkers {
		return fmt.Errorf("scan.workers must be between 1 and %d", maxScanWorkers)
	}
	if _, err := filepath.Match(c.Scan.Pattern, ""); err != nil {
		return fmt.Errorf("scan.pattern is not a valid glob: %w", err)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set when catalog.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Logging.Level)
	}
	for component, level := range c.Logging.ComponentLevels {
		if !slices.Contains(validLogLevels, level) {
			return fmt.Errorf("logging.component_levels.%s must be one of %s, got %q",
				component, strings.Join(validLogLevels, ", "), level)
		}
	}
	return nil
}
