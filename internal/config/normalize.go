package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeReader(); err != nil {
		return err
	}
	c.normalizeScan()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeReader() error {
	if value, ok := os.LookupEnv(gridSpacingEnvVar); ok && strings.TrimSpace(value) != "" {
		spacing, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", gridSpacingEnvVar, err)
		}
		c.Reader.GridSpacing = spacing
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Pattern = strings.TrimSpace(c.Scan.Pattern)
	if c.Scan.Pattern == "" {
		c.Scan.Pattern = defaultScanPattern
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = defaultScanWorkers
	}
}

func (c *Config) normalizeCatalog() error {
	if value, ok := os.LookupEnv(catalogPathEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Catalog.Path = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath()
	}
	var err error
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	if len(c.Logging.ComponentLevels) > 0 {
		levels := make(map[string]string, len(c.Logging.ComponentLevels))
		for component, level := range c.Logging.ComponentLevels {
			key := strings.ToLower(strings.TrimSpace(component))
			if key == "" {
				continue
			}
			levels[key] = strings.ToLower(strings.TrimSpace(level))
		}
		c.Logging.ComponentLevels = levels
	}
	return nil
}

// LogFilePath returns the log file written when logging.dir is set, or "".
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return ""
	}
	return filepath.Join(c.Logging.Dir, "faultline.log")
}
