package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/config"
	"github.com/cardroomlabs/holdem/internal/simulator"
)

// SimulateCmd plays AI-only hands to exercise the engine
type SimulateCmd struct {
	Config string `short:"c" default:"holdem.hcl" help:"Path to the HCL config file"`
	Tables int    `default:"4" help:"Concurrent tables"`
	Hands  int    `default:"100" help:"Hands per table"`
	Seed   *int64 `help:"Deterministic seed (overrides the config file)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           logLevel(cfg.Session.LogLevel, c.Debug),
	})

	_, seed := seededRNG(c.Seed, cfg.Session.Seed)
	logger.Info("starting simulation", "tables", c.Tables, "hands", c.Hands, "seed", seed)

	sim := simulator.New(simulator.Config{
		Tables: c.Tables,
		Hands:  c.Hands,
		Seed:   seed,
		Game:   cfg.Game(),
		Logger: logger,
	})
	results, err := sim.Run()
	if err != nil {
		return err
	}

	fmt.Printf("hands played: %d\n", results.HandsPlayed)
	for seat := range results.WinsBySeat {
		fmt.Printf("seat %d: %d winning hands, net %+d chips\n",
			seat, results.WinsBySeat[seat], results.NetBySeat[seat])
	}
	return nil
}
