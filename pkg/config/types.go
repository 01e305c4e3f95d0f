package config

import "fmt"

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		DBPath      string `yaml:"db_path"`
		SnapshotKey string `yaml:"snapshot_key"`
	} `yaml:"storage"`
	Conversation struct {
		SelfLabel    string `yaml:"self_label"`
		PreviewWidth int    `yaml:"preview_width"`
		NoticeTTL    int    `yaml:"notice_ttl_seconds"`
		Seed         struct {
			Name     string `yaml:"name"`
			Avatar   string `yaml:"avatar"`
			Kind     string `yaml:"kind"`
			Greeting string `yaml:"greeting"`
		} `yaml:"seed"`
	} `yaml:"conversation"`
	Backup struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"backup"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Addr returns the listen address in host:port form. Unset values fall
// back to listening on every interface, port 8080.
func (c *Config) Addr() string {
	host := c.Server.Address
	port := c.Server.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}
