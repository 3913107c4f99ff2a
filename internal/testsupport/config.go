package testsupport

import (
	"path/filepath"
	"testing"

	"faultline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Path = filepath.Join(base, "data", "catalog.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Scan.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithGridSpacing overrides the reader grid spacing.
func WithGridSpacing(km float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reader.GridSpacing = km
	}
}

// WithStrictMarkers enables strict rupture marker handling.
func WithStrictMarkers() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reader.StrictMarkers = true
	}
}

// WithoutCatalog disables the scan catalog.
func WithoutCatalog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Catalog.Path))
}
