package cli

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI's persistent settings, loaded from a TOML file.
// Every field has a zero-value default, so a missing config file is fine.
type Config struct {
	// Cache settings
	CacheDir string `toml:"cache_dir"` // empty means ~/.cache/cadence
	NoCache  bool   `toml:"no_cache"`  // disable the schedule cache entirely

	// Redis settings (used instead of the file cache when Addr is set)
	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`

	// Mongo settings for the serve command's schedule store
	Mongo struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`

	// Server settings
	Server struct {
		Addr string `toml:"addr"` // defaults to ":8080"
	} `toml:"server"`

	// Schedule defaults, overridable per invocation by flags
	Defaults struct {
		MaxParallel int `toml:"max_parallel"`
		RowCount    int `toml:"row_count"`
	} `toml:"defaults"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero config, not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
