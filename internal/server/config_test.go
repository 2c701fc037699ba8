package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	src := []byte(`
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

table "main" {
  small_blind = 5
  big_blind   = 10
}

table "high-stakes" {
  max_players          = 9
  small_blind          = 50
  big_blind            = 100
  starting_chips       = 20000
  turn_timeout_seconds = 15
}
`)

	cfg, err := ParseConfig(src, "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	require.Len(t, cfg.Tables, 2)

	// Defaults fill in what the block omits
	main := cfg.Tables[0]
	assert.Equal(t, 6, main.MaxPlayers)
	assert.Equal(t, 1000, main.StartingChips) // 100 big blinds
	assert.Equal(t, 30, main.TurnTimeoutSeconds)

	high := cfg.Tables[1]
	assert.Equal(t, 9, high.MaxPlayers)
	assert.Equal(t, 20000, high.StartingChips)
	assert.Equal(t, 15, high.TurnTimeoutSeconds)

	require.NoError(t, cfg.Validate())
}

func TestParseConfigInvalidHCL(t *testing.T) {
	_, err := ParseConfig([]byte(`table "x" {`), "broken.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no tables",
			mutate:  func(c *Config) { c.Tables = nil },
			wantErr: "at least one table",
		},
		{
			name:    "big blind not above small blind",
			mutate:  func(c *Config) { c.Tables[0].BigBlind = c.Tables[0].SmallBlind },
			wantErr: "big blind",
		},
		{
			name:    "too many players",
			mutate:  func(c *Config) { c.Tables[0].MaxPlayers = 11 },
			wantErr: "max players",
		},
		{
			name:    "starting chips below the big blind",
			mutate:  func(c *Config) { c.Tables[0].StartingChips = 5 },
			wantErr: "starting chips",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "port",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestListenAddressWithInlinePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Address = "127.0.0.1:3000"
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddress())
}
