package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines a poker table configuration
type TableConfig struct {
	Name               string `hcl:"name,label"`
	MaxPlayers         int    `hcl:"max_players,optional"`
	SmallBlind         int    `hcl:"small_blind"`
	BigBlind           int    `hcl:"big_blind"`
	StartingChips      int    `hcl:"starting_chips,optional"`
	TurnTimeoutSeconds int    `hcl:"turn_timeout_seconds,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:               "main",
				MaxPlayers:         6,
				SmallBlind:         5,
				BigBlind:           10,
				StartingChips:      1000,
				TurnTimeoutSeconds: 30,
			},
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// ParseConfig decodes configuration from an in-memory HCL document
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	for i := range c.Tables {
		if c.Tables[i].MaxPlayers == 0 {
			c.Tables[i].MaxPlayers = 6
		}
		if c.Tables[i].StartingChips == 0 {
			c.Tables[i].StartingChips = c.Tables[i].BigBlind * 100
		}
		if c.Tables[i].TurnTimeoutSeconds == 0 {
			c.Tables[i].TurnTimeoutSeconds = 30
		}
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, table := range c.Tables {
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind <= table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", table.Name)
		}
		if table.MaxPlayers < 2 || table.MaxPlayers > 10 {
			return fmt.Errorf("table %s: max players must be between 2 and 10", table.Name)
		}
		if table.StartingChips < table.BigBlind {
			return fmt.Errorf("table %s: starting chips must cover the big blind", table.Name)
		}
	}
	return nil
}

// ListenAddress returns the host:port the server binds to. An Address
// that already carries a port wins over the Port setting.
func (c *Config) ListenAddress() string {
	if strings.Contains(c.Server.Address, ":") {
		return c.Server.Address
	}
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
