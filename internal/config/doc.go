// Package config loads, normalizes, and validates scribe's TOML
// configuration. All path fields are expanded to absolute paths during Load
// so downstream components never see "~" or relative values.
package config
