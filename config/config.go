package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/f3rnandomoreno/cleaning-process-macos/rules"
)

var (
	configDir  = filepath.Join(os.Getenv("HOME"), ".cleanproc")
	configPath = filepath.Join(configDir, "config.json")
)

// Config is the static program configuration: the protection allow-lists
// and the refresh interval. Read-only at run time; edits to the file are
// picked up by the watcher.
type Config struct {
	EssentialNames         []string `json:"essential_names"`
	EssentialPids          []int32  `json:"essential_pids"`
	RefreshIntervalSeconds int      `json:"refresh_interval_seconds"`
}

// EssentialitySet builds the immutable classifier input from the lists.
func (c *Config) EssentialitySet() rules.EssentialitySet {
	return rules.NewEssentialitySet(c.EssentialNames, c.EssentialPids)
}

// Load reads the config file, writing defaults back when the file is
// missing or broken.
func Load() (*Config, error) {
	os.MkdirAll(configDir, 0755)

	data, err := os.ReadFile(configPath)
	if err != nil {
		cfg := defaultConfig()
		_ = Save(cfg)
		return cfg, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg := defaultConfig()
		_ = Save(cfg)
		return cfg, nil
	}

	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = defaultConfig().RefreshIntervalSeconds
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return os.WriteFile(configPath, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		EssentialNames:         append([]string(nil), rules.DefaultNames...),
		EssentialPids:          append([]int32(nil), rules.DefaultPids...),
		RefreshIntervalSeconds: 3,
	}
}

func Path() string {
	return configPath
}
