// Package config loads, defaults, normalizes, and validates the TOML
// configuration for steamtab. Load resolves the config file from an explicit
// path, ~/.config/steamtab/config.toml, or ./steamtab.toml, in that order.
package config
