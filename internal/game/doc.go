// Package game implements the Texas Hold'em engine: the betting round
// state machine, the hand orchestrator, the table session that owns seats
// across hands, and the scripted AI policy for non-human seats.
//
// The engine is a single logical actor. Exactly one seat decides at a
// time; a human action arrives through Hand.PlayerAction and an AI turn
// is taken when the presentation layer calls Hand.Advance, after whatever
// pacing delay it chooses. Every state transition publishes a Snapshot to
// the configured Presenter.
//
// Chips only enter or leave the engine at two points: the one-time
// session buy-in and pot awards, both settled against balance.Service.
// Between those boundaries the sum of stacks and pot is conserved.
package game
