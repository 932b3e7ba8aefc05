package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.ListenAddr)
	require.Equal(t, "server_log.txt", cfg.Server.LogFile)
	require.Equal(t, int64(10), cfg.Server.MaxSessions)
	require.Len(t, cfg.Users, 3)
	require.Len(t, cfg.Auctions, 5)
	require.Equal(t, "Antique Vase", cfg.Auctions[0].ItemName)
	require.Equal(t, 50.0, cfg.Auctions[0].StartingBid)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.ListenAddr)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auction.yaml")
	content := `
server:
  listen_addr: ":9090"
  log_file: "audit.log"
  max_sessions: 4
users:
  - username: alice
    password: wonderland
auctions:
  - id: 1
    item_name: "Old Clock"
    starting_bid: 75.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.ListenAddr)
	require.Equal(t, "audit.log", cfg.Server.LogFile)
	require.Equal(t, int64(4), cfg.Server.MaxSessions)
	// admin_addr untouched by the file keeps its default
	require.Equal(t, ":8081", cfg.Server.AdminAddr)
	require.Len(t, cfg.Users, 1)
	require.Equal(t, "alice", cfg.Users[0].Username)
	require.Len(t, cfg.Auctions, 1)
	require.Equal(t, 75.5, cfg.Auctions[0].StartingBid)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUCTION_LISTEN_ADDR", ":7070")
	t.Setenv("AUCTION_MAX_SESSIONS", "25")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.ListenAddr)
	require.Equal(t, int64(25), cfg.Server.MaxSessions)
}

func TestLoad_RejectsNonPositiveMaxSessions(t *testing.T) {
	t.Setenv("AUCTION_MAX_SESSIONS", "-1")

	_, err := Load("")
	require.Error(t, err)
}
