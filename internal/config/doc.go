// Package config loads, normalizes, and validates Faultline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// FAULTLINE_GRID_SPACING. Commands obtain reader, scan, catalog and logging
// settings through this package so they receive expanded paths and clear
// validation errors.
package config
