// SPDX-License-Identifier: MPL-2.0

// Package config handles tool configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from ~/.config/freighter/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/freighter/config.cue
// on macOS, %APPDATA%\freighter\config.cue on Windows), falling back to a
// config.cue in the current directory. It covers the registry index
// override, UI settings, and the warnings policy applied when manifests
// are checked.
//
// Files are validated against a CUE schema (config_schema.cue) before
// use, so invalid configurations fail with the JSON path of the bad
// field.
package config
