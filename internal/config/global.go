// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects config directory lookup, mainly so tests
// can point loading at a temp directory without touching HOME, which
// os.UserHomeDir() does not honor consistently everywhere.
var configDirOverride string

// Reset restores the default config directory lookup. Register it as a
// test cleanup after SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride forces config loading to use dir instead of the
// per-platform default location.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
