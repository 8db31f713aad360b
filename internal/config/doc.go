// Package config loads and validates the dubsync TOML configuration.
//
// Loading is a three step pipeline: decode the TOML file over repository
// defaults, normalize (trim, expand ~, fill derived defaults), then
// validate. A missing config file is not an error; defaults apply.
package config
