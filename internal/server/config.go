package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/jnycolej/GamesApp/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains transport-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains room engine configuration. Durations are parsed
// from Go duration strings ("20m", "1h").
type GameSettings struct {
	HandSize        int    `hcl:"hand_size,optional"`
	MinPlayers      int    `hcl:"min_players,optional"`
	OpenHands       *bool  `hcl:"open_hands,optional"`
	EvictionDelay   string `hcl:"eviction_delay,optional"`
	InviteTTL       string `hcl:"invite_ttl,optional"`
	CatalogDir      string `hcl:"catalog_dir,optional"`
	SacrificeShield string `hcl:"sacrifice_shield,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
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

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.HandSize < 0 {
		return fmt.Errorf("hand size must not be negative")
	}
	if c.Game.MinPlayers < 0 {
		return fmt.Errorf("min players must not be negative")
	}
	for _, d := range []struct {
		name  string
		value string
	}{
		{"eviction_delay", c.Game.EvictionDelay},
		{"invite_ttl", c.Game.InviteTTL},
		{"sacrifice_shield", c.Game.SacrificeShield},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig resolves the configured overrides against the engine
// defaults. Validate must have passed before calling.
func (c *Config) GameConfig() game.Settings {
	settings := game.DefaultSettings()
	if c.Game.HandSize > 0 {
		settings.HandSize = c.Game.HandSize
	}
	if c.Game.MinPlayers > 0 {
		settings.MinPlayers = c.Game.MinPlayers
	}
	if c.Game.OpenHands != nil {
		settings.OpenHandsAllowed = *c.Game.OpenHands
	}
	if c.Game.EvictionDelay != "" {
		settings.EvictionDelay, _ = time.ParseDuration(c.Game.EvictionDelay)
	}
	if c.Game.InviteTTL != "" {
		settings.InviteTTL, _ = time.ParseDuration(c.Game.InviteTTL)
	}
	if c.Game.SacrificeShield != "" {
		settings.SacrificeShield, _ = time.ParseDuration(c.Game.SacrificeShield)
	}
	return settings
}
