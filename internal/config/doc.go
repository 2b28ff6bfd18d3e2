// Package config loads, validates, and normalizes voxlog configuration.
//
// Settings come from a TOML file (default ~/.config/voxlog/config.toml),
// optionally overlaid with environment variables for secrets. A .env file in
// the working directory is honored the way the service was originally
// deployed. The resulting Config is immutable after Load and passed by
// reference to each component; there is no ambient global.
package config
