// Package config loads game settings from an HCL file, falling back to
// defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroomlabs/holdem/internal/game"
)

// GameConfig is the root of the configuration file. Both blocks are
// optional; missing values are back-filled from Default.
type GameConfig struct {
	Table   *TableSettings `hcl:"table,block"`
	Session *Session       `hcl:"session,block"`
}

// TableSettings configures the table the engine opens
type TableSettings struct {
	Players       int `hcl:"players,optional"`
	StartingChips int `hcl:"starting_chips,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
}

// Session configures everything around the table: balance, pacing, logs
type Session struct {
	Balance      int    `hcl:"balance,optional"`
	ThinkDelayMS int    `hcl:"think_delay_ms,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	Seed         int64  `hcl:"seed,optional"`
}

// Default returns the configuration used when no file exists
func Default() *GameConfig {
	return &GameConfig{
		Table: &TableSettings{
			Players:       4,
			StartingChips: 1000,
			SmallBlind:    10,
			BigBlind:      20,
		},
		Session: &Session{
			Balance:      5000,
			ThinkDelayMS: 900,
			LogLevel:     "info",
		},
	}
}

// Load reads the configuration from an HCL file. A missing file yields
// the defaults; a present file is decoded and back-filled with them.
func Load(filename string) (*GameConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	var cfg GameConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *GameConfig) {
	def := Default()
	if cfg.Table == nil {
		cfg.Table = def.Table
	}
	if cfg.Session == nil {
		cfg.Session = def.Session
	}
	if cfg.Table.Players == 0 {
		cfg.Table.Players = def.Table.Players
	}
	if cfg.Table.StartingChips == 0 {
		cfg.Table.StartingChips = def.Table.StartingChips
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = def.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = def.Table.BigBlind
	}
	if cfg.Session.Balance == 0 {
		cfg.Session.Balance = def.Session.Balance
	}
	if cfg.Session.ThinkDelayMS == 0 {
		cfg.Session.ThinkDelayMS = def.Session.ThinkDelayMS
	}
	if cfg.Session.LogLevel == "" {
		cfg.Session.LogLevel = def.Session.LogLevel
	}
}

// Game converts the table settings into the engine's Config
func (c *GameConfig) Game() game.Config {
	return game.Config{
		NumPlayers:    c.Table.Players,
		StartingChips: c.Table.StartingChips,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
	}
}

// ThinkDelay returns the AI pacing delay as a duration
func (c *GameConfig) ThinkDelay() time.Duration {
	return time.Duration(c.Session.ThinkDelayMS) * time.Millisecond
}
