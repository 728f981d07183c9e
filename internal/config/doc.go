// Package config loads and merges scorecard configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SCORECARD_DATA_FILE, SCORECARD_FORMAT, SCORECARD_COLOR, etc.),
//     including those defined in a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/scorecard/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
