package config

import (
	"flag"
	"net"
	"os"
	"strconv"
)

// Flags holds parsed command-line flag values and which were set.
type Flags struct {
	Addr   string
	DB     string
	Config string
	Set    map[string]bool
}

// ParseCommandFlags parses command-line flags and returns them as a Flags
// struct.
func ParseCommandFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return Flags{Addr: *addrPtr, DB: *dbPtr, Config: *cfgPtr, Set: setFlags}
}

// applyEnv overlays CONVSTORE_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CONVSTORE_ADDR"); v != "" {
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("CONVSTORE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CONVSTORE_SNAPSHOT_KEY"); v != "" {
		cfg.Storage.SnapshotKey = v
	}
	if v := os.Getenv("CONVSTORE_SELF_LABEL"); v != "" {
		cfg.Conversation.SelfLabel = v
	}
	if v := os.Getenv("CONVSTORE_PREVIEW_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Conversation.PreviewWidth = n
		}
	}
	if v := os.Getenv("CONVSTORE_NOTICE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Conversation.NoticeTTL = n
		}
	}
	if v := os.Getenv("CONVSTORE_BACKUP_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Backup.Enabled = b
		}
	}
	if v := os.Getenv("CONVSTORE_BACKUP_CRON"); v != "" {
		cfg.Backup.Cron = v
	}
	if v := os.Getenv("CONVSTORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
