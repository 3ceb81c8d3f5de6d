package game

import "fmt"

// Config holds the table settings accepted at game start. Invalid
// combinations are rejected by Validate before any chips move.
type Config struct {
	NumPlayers    int // seats at the table, human included
	StartingChips int
	SmallBlind    int
	BigBlind      int
}

// Validate checks the configuration against the table limits
func (c Config) Validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > 6 {
		return fmt.Errorf("%w: number of players must be 2-6, got %d", ErrInvalidConfig, c.NumPlayers)
	}
	if c.StartingChips < 100 {
		return fmt.Errorf("%w: starting chips must be at least 100, got %d", ErrInvalidConfig, c.StartingChips)
	}
	if c.SmallBlind < 1 {
		return fmt.Errorf("%w: small blind must be at least 1, got %d", ErrInvalidConfig, c.SmallBlind)
	}
	if c.BigBlind < 2*c.SmallBlind {
		return fmt.Errorf("%w: big blind must be at least twice the small blind, got %d/%d",
			ErrInvalidConfig, c.SmallBlind, c.BigBlind)
	}
	return nil
}
