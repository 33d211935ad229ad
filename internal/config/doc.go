// SPDX-License-Identifier: MPL-2.0

// Package config loads icm settings with Viper, using CUE as the file format.
//
// The file is config.cue in the platform config directory
// ($XDG_CONFIG_HOME/icm, ~/Library/Application Support/icm on macOS,
// %APPDATA%\icm on Windows) unless an explicit path is given. It is
// validated against the embedded config_schema.cue before being merged over
// the defaults. Environment variables prefixed with ICM_ override file
// values (e.g. ICM_REMOTE_TIMEOUT=30s).
package config
