package config

const (
	defaultConfigPath    = "~/.config/faultline/config.toml"
	defaultGridSpacing   = 1.0
	defaultScanWorkers   = 4
	defaultScanPattern   = "*.xml"
	defaultCatalogFile   = "~/.local/share/faultline/catalog.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	maxScanWorkers       = 256
	gridSpacingEnvVar    = "FAULTLINE_GRID_SPACING"
	catalogPathEnvVar    = "FAULTLINE_CATALOG_PATH"
	defaultCatalogOnScan = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Reader: Reader{
			GridSpacing: defaultGridSpacing,
		},
		Scan: Scan{
			Workers: defaultScanWorkers,
			Pattern: defaultScanPattern,
		},
		Catalog: Catalog{
			Enabled: defaultCatalogOnScan,
			Path:    defaultCatalogPath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
