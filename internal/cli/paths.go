package cli

import (
	"os"
	"path/filepath"
)

// cacheDir returns the schedule cache directory, creating nothing.
// Resolution order: $CADENCE_CACHE_DIR, then ~/.cache/cadence.
func cacheDir() (string, error) {
	if dir := os.Getenv("CADENCE_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "cadence"), nil
}

// defaultConfigPath returns the default config file location.
// Resolution order: $CADENCE_CONFIG, then ~/.config/cadence/config.toml.
func defaultConfigPath() (string, error) {
	if path := os.Getenv("CADENCE_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cadence", "config.toml"), nil
}
