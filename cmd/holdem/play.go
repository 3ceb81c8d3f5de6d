package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroomlabs/holdem/internal/balance"
	"github.com/cardroomlabs/holdem/internal/config"
	"github.com/cardroomlabs/holdem/internal/game"
	"github.com/cardroomlabs/holdem/internal/randutil"
	"github.com/cardroomlabs/holdem/internal/tui"
)

var summaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Config  string `short:"c" default:"holdem.hcl" help:"Path to the HCL config file"`
	LogFile string `default:"holdem.log" help:"Debug log destination (stdout belongs to the table)"`
	Debug   bool   `help:"Enable debug logging"`
	Seed    *int64 `help:"Deterministic shuffle seed (overrides the config file)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           logLevel(cfg.Session.LogLevel, c.Debug),
	})

	rng, seed := seededRNG(c.Seed, cfg.Session.Seed)
	logger.Info("starting session", "seed", seed,
		"players", cfg.Table.Players, "balance", cfg.Session.Balance)

	svc := balance.NewInMemory(cfg.Session.Balance)
	pacer := game.NewPacer(quartz.NewReal(), cfg.ThinkDelay())

	ui := tui.New(svc, pacer, logger)
	table, err := game.NewTable(cfg.Game(), svc, ui.Presenter(), rng, logger)
	if err != nil {
		return err
	}
	ui.SetTable(table)

	if err := ui.Run(); err != nil {
		return err
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf(" Thanks for playing • bankroll $%d ", svc.Balance())))
	return nil
}

// seededRNG resolves the shuffle seed: flag beats config file beats clock
func seededRNG(flag *int64, fromConfig int64) (*rand.Rand, int64) {
	var seed int64
	switch {
	case flag != nil:
		seed = *flag
	case fromConfig != 0:
		seed = fromConfig
	default:
		seed = time.Now().UnixNano()
	}
	return randutil.New(seed), seed
}

func logLevel(configured string, debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	if lvl, err := log.ParseLevel(configured); err == nil {
		return lvl
	}
	return log.InfoLevel
}
