// Package config resolves file paths and loads connector settings from the
// viper-backed configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves ~ and $VAR references in a configured path, so settings
// like database.path accept "~/.local/share/piggyback/piggyback.db" or
// "$XDG_DATA_HOME/piggyback.db". When the home directory cannot be resolved
// the tilde is left in place.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
