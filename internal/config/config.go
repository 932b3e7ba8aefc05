package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	model "auction-service/internal/models"
)

// ServerConfig holds the network and logging settings of the auction server
type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	AdminAddr   string `yaml:"admin_addr"`
	LogFile     string `yaml:"log_file"`
	MaxSessions int64  `yaml:"max_sessions"`
}

// SeedAuction describes one auction created at startup
type SeedAuction struct {
	ID          int64   `yaml:"id"`
	ItemName    string  `yaml:"item_name"`
	StartingBid float64 `yaml:"starting_bid"`
}

// Config is the full process configuration, loaded once at startup
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Users    []model.User  `yaml:"users"`
	Auctions []SeedAuction `yaml:"auctions"`
}

// Default returns the built-in configuration: the classic five-auction,
// three-user setup on port 8080.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			AdminAddr:   ":8081",
			LogFile:     "server_log.txt",
			MaxSessions: 10,
		},
		Users: []model.User{
			{Username: "user1", Password: "pass1"},
			{Username: "user2", Password: "pass2"},
			{Username: "admin", Password: "admin123"},
		},
		Auctions: []SeedAuction{
			{ID: 1, ItemName: "Antique Vase", StartingBid: 50.0},
			{ID: 2, ItemName: "Vintage Car", StartingBid: 500.0},
			{ID: 3, ItemName: "Adventure 360", StartingBid: 200.0},
			{ID: 4, ItemName: "Yamaha 340", StartingBid: 180.0},
			{ID: 5, ItemName: "Tata Power", StartingBid: 350.0},
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error: the defaults are a
// complete working configuration. An unreadable or malformed file is fatal
// to the caller, by design, so a broken deployment cannot start half-configured.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("AUCTION_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Server.MaxSessions <= 0 {
		return nil, fmt.Errorf("config: max_sessions must be positive, got %d", cfg.Server.MaxSessions)
	}
	if len(cfg.Auctions) == 0 {
		return nil, errors.New("config: at least one auction is required")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AUCTION_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("AUCTION_ADMIN_ADDR"); v != "" {
		cfg.Server.AdminAddr = v
	}
	if v := os.Getenv("AUCTION_LOG_FILE"); v != "" {
		cfg.Server.LogFile = v
	}
	if v := os.Getenv("AUCTION_MAX_SESSIONS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxSessions = n
		}
	}
}
