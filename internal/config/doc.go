// Package config loads and persists mixdown's TOML configuration.
//
// The default location is ~/.config/mixdown/config.toml. A missing file is
// not an error: Load returns the built-in defaults so the tool works out of
// the box. All path values are tilde-expanded and normalized to absolute
// paths during load.
package config
