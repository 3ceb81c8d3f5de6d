package game

import "errors"

var (
	// ErrInvalidConfig wraps configuration rejections; no chips move
	// when it is returned.
	ErrInvalidConfig = errors.New("invalid game config")

	// ErrInsufficientBalance means the balance cannot cover the buy-in.
	ErrInsufficientBalance = errors.New("balance cannot cover buy-in")

	// ErrIllegalAction wraps action rejections: check against an
	// outstanding bet, raise below minimum, raise beyond stack. The hand
	// state is unchanged when it is returned.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNotYourTurn is returned when a seat acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrHandComplete is returned for actions on a settled hand.
	ErrHandComplete = errors.New("hand already settled")

	// ErrHumanTurn is returned by Advance when the acting seat expects a
	// human decision via PlayerAction.
	ErrHumanTurn = errors.New("waiting for human action")

	// ErrHandInProgress is returned when a new hand is requested before
	// the current one settles.
	ErrHandInProgress = errors.New("hand still in progress")

	// ErrGameOver means fewer than two seats can still post chips.
	ErrGameOver = errors.New("not enough funded seats to continue")
)
