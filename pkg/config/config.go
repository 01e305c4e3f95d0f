package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveConfigPath picks the config file path: an explicitly set flag
// wins, then the CONVSTORE_CONFIG env var, then the flag default.
func ResolveConfigPath(flagVal string, flagSet bool) string {
	if flagSet {
		return flagVal
	}
	if v := os.Getenv("CONVSTORE_CONFIG"); v != "" {
		return v
	}
	return flagVal
}

// LoadEffective loads the config file (a missing file is not an error) and
// applies environment overrides on top. File values win over defaults, env
// values win over file values; explicit flags are applied by the caller
// last.
func LoadEffective(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else {
			cfg = loaded
		}
	}
	applyEnv(cfg)
	return cfg, nil
}
