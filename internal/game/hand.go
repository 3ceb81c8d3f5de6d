package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/evaluator"
)

// Hand drives one deal through {preflop, flop, turn, river, showdown,
// settled}: blinds, hole cards, the betting rounds, community reveals and
// pot settlement. Seats and chip stacks are shared with the owning Table
// and survive the hand; everything else is discarded at settlement.
type Hand struct {
	logger     *log.Logger
	deck       *deck.Deck
	players    []*Player
	button     int
	sbSeat     int
	bbSeat     int
	smallBlind int
	bigBlind   int

	street    Street
	community []deck.Card
	collected int // contributions folded in from completed streets
	betting   *BettingRound
	acting    int

	ai        *AIPolicy
	presenter Presenter
	onAward   func(p *Player, share int)
	result    string
}

func newHand(players []*Player, button int, cfg Config, d *deck.Deck, ai *AIPolicy,
	presenter Presenter, onAward func(*Player, int), logger *log.Logger) (*Hand, error) {

	h := &Hand{
		logger:     logger,
		deck:       d,
		players:    players,
		button:     button,
		smallBlind: cfg.SmallBlind,
		bigBlind:   cfg.BigBlind,
		street:     Preflop,
		betting:    NewBettingRound(len(players)),
		ai:         ai,
		presenter:  presenter,
		onAward:    onAward,
	}

	for _, p := range players {
		p.resetForHand()
	}

	h.assignBlindSeats()
	h.postBlinds()

	for _, p := range h.players {
		if p.Status == StatusSittingOut {
			continue
		}
		cards, err := h.deck.DrawN(2)
		if err != nil {
			return nil, h.abort(err)
		}
		p.HoleCards = cards
	}

	h.acting = h.nextActor(h.bbSeat + 1)
	h.logger.Debug("hand dealt",
		"button", h.button, "smallBlind", h.sbSeat, "bigBlind", h.bbSeat, "toAct", h.acting)

	// Blinds can put every seat all-in before anyone acts; run the board
	// straight out in that case.
	var runoutErr error
	if h.acting == -1 {
		runoutErr = h.nextStreet()
	}
	h.publish()
	if runoutErr != nil {
		return nil, runoutErr
	}
	return h, nil
}

// assignBlindSeats places the blinds relative to the button. Heads-up the
// button posts the small blind, otherwise the two seats after it do.
func (h *Hand) assignBlindSeats() {
	if h.seatedCount() == 2 {
		if h.players[h.button].Status != StatusSittingOut {
			h.sbSeat = h.button
		} else {
			h.sbSeat = h.nextSeated(h.button + 1)
		}
		h.bbSeat = h.nextSeated(h.sbSeat + 1)
		return
	}
	h.sbSeat = h.nextSeated(h.button + 1)
	h.bbSeat = h.nextSeated(h.sbSeat + 1)
}

// postBlinds moves the forced bets into street contributions. A short
// stack posts what it has and is all-in.
func (h *Hand) postBlinds() {
	post := func(p *Player, amount int) {
		bet := min(amount, p.Chips)
		p.Chips -= bet
		p.StreetBet = bet
		p.TotalBet = bet
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}
	}
	post(h.players[h.sbSeat], h.smallBlind)
	post(h.players[h.bbSeat], h.bigBlind)
	h.betting.ToCall = h.bigBlind
}

// Street returns the current phase of the hand
func (h *Hand) Street() Street {
	return h.street
}

// ActingSeat returns the seat index whose decision is awaited, -1 if none
func (h *Hand) ActingSeat() int {
	if h.street >= Showdown {
		return -1
	}
	return h.acting
}

// Pot returns all contributions so far, including the current street's
func (h *Hand) Pot() int {
	pot := h.collected
	for _, p := range h.players {
		pot += p.StreetBet
	}
	return pot
}

// ToCall returns the street contribution a seat must match to stay in
func (h *Hand) ToCall() int {
	return h.betting.ToCall
}

// Community returns the revealed community cards
func (h *Hand) Community() []deck.Card {
	return h.community
}

// Result returns the settlement description, empty until the hand settles
func (h *Hand) Result() string {
	return h.result
}

// PlayerAction is the entry point for the human seat's decision. raiseTo
// is the total street contribution a raise targets and is ignored for
// other actions. Illegal actions leave the hand unchanged.
func (h *Hand) PlayerAction(seat int, action Action, raiseTo int) error {
	if h.street >= Showdown {
		return ErrHandComplete
	}
	if seat != h.acting {
		return fmt.Errorf("%w: seat %d acting, got %d", ErrNotYourTurn, h.acting, seat)
	}

	p := h.players[seat]
	if err := h.betting.Apply(p, action, raiseTo); err != nil {
		return err
	}

	h.logger.Debug("player action",
		"seat", seat, "name", p.Name, "action", action, "raiseTo", raiseTo,
		"street", h.street, "pot", h.Pot())

	err := h.advanceTurn()
	h.publish()
	return err
}

// Advance takes the pending AI seat's turn. The presentation layer calls
// this after its chosen pacing delay; the engine never schedules AI moves
// on its own.
func (h *Hand) Advance() error {
	if h.street >= Showdown {
		return ErrHandComplete
	}
	p := h.players[h.acting]
	if p.Human {
		return ErrHumanTurn
	}

	action, raiseTo := h.ai.Decide(p, h.betting.ToCall)
	if err := h.betting.Apply(p, action, raiseTo); err != nil {
		// The policy is defined never to pick an illegal action.
		return fmt.Errorf("ai picked an illegal action: %w", err)
	}

	h.logger.Debug("ai action",
		"seat", p.Seat, "name", p.Name, "action", action, "raiseTo", raiseTo,
		"street", h.street, "pot", h.Pot())

	err := h.advanceTurn()
	h.publish()
	return err
}

// Abandon discards the hand between transitions. Chips already
// contributed are not refunded and no pot is awarded.
func (h *Hand) Abandon() {
	if h.street >= Settled {
		return
	}
	h.street = Settled
	h.acting = -1
	h.result = "hand abandoned"
	h.logger.Info("hand abandoned", "pot", h.Pot())
	h.publish()
}

func (h *Hand) advanceTurn() error {
	if h.betting.Complete(h.players) {
		return h.nextStreet()
	}
	h.acting = h.nextActor(h.acting + 1)
	if h.acting == -1 {
		return h.nextStreet()
	}
	return nil
}

// nextStreet folds street bets into the pot and deals the next community
// cards, burning one card first per standard convention. When nobody can
// act (everyone remaining is all-in) it deals through to showdown.
func (h *Hand) nextStreet() error {
	for _, p := range h.players {
		h.collected += p.StreetBet
		p.StreetBet = 0
	}
	h.betting.Reset()

	if h.inHandCount() <= 1 {
		return h.settleFold()
	}

	switch h.street {
	case Preflop:
		h.street = Flop
		if err := h.dealCommunity(3); err != nil {
			return h.abort(err)
		}
	case Flop:
		h.street = Turn
		if err := h.dealCommunity(1); err != nil {
			return h.abort(err)
		}
	case Turn:
		h.street = River
		if err := h.dealCommunity(1); err != nil {
			return h.abort(err)
		}
	case River:
		h.street = Showdown
		return h.showdown()
	default:
		return nil
	}

	h.logger.Debug("street dealt", "street", h.street, "community", cardsString(h.community), "pot", h.Pot())

	h.acting = h.nextActor(h.button + 1)
	if h.acting == -1 {
		// All remaining seats are all-in; run the board out, publishing
		// each reveal so the presentation can pace them.
		h.publish()
		return h.nextStreet()
	}
	return nil
}

func (h *Hand) dealCommunity(n int) error {
	if err := h.deck.Burn(); err != nil {
		return err
	}
	cards, err := h.deck.DrawN(n)
	if err != nil {
		return err
	}
	h.community = append(h.community, cards...)
	return nil
}

// settleFold awards the pot to the last seat holding a claim on it
func (h *Hand) settleFold() error {
	for _, p := range h.players {
		if p.InHand() {
			h.award([]*Player{p}, fmt.Sprintf("%s wins %d, all others folded", p.Name, h.collected))
			return nil
		}
	}
	// Everyone folded or sat out; nothing to award.
	h.street = Settled
	h.acting = -1
	h.result = "no claim on the pot"
	return nil
}

// showdown evaluates every remaining seat and awards the pot to the
// strongest ranking, split equally on exact ties.
func (h *Hand) showdown() error {
	var (
		winners []*Player
		best    evaluator.Ranking
	)

	for _, p := range h.players {
		if !p.InHand() {
			continue
		}
		ranking, err := evaluator.Evaluate(p.HoleCards, h.community)
		if err != nil {
			return h.abort(err)
		}
		h.logger.Debug("showdown ranking", "seat", p.Seat, "name", p.Name,
			"hole", cardsString(p.HoleCards), "ranking", ranking.String())

		switch {
		case len(winners) == 0 || ranking.Beats(best):
			winners = []*Player{p}
			best = ranking
		case ranking.Compare(best) == 0:
			winners = append(winners, p)
		}
	}

	if len(winners) == 1 {
		h.award(winners, fmt.Sprintf("%s wins %d with %s", winners[0].Name, h.collected, best))
		return nil
	}
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	h.award(winners, fmt.Sprintf("%s split %d with %s", strings.Join(names, " and "), h.collected, best))
	return nil
}

// award splits the pot among the winners. An odd remainder goes one chip
// at a time to the tied seats in order after the button.
func (h *Hand) award(winners []*Player, description string) {
	share := h.collected / len(winners)
	remainder := h.collected - share*len(winners)

	ordered := h.orderFromButton(winners)
	for _, w := range ordered {
		amount := share
		if remainder > 0 {
			amount++
			remainder--
		}
		w.Chips += amount
		if h.onAward != nil {
			h.onAward(w, amount)
		}
	}

	h.collected = 0
	h.street = Settled
	h.acting = -1
	h.result = description
	h.logger.Info("hand settled", "result", description)
}

// orderFromButton sorts the winners by seat starting left of the button
func (h *Hand) orderFromButton(winners []*Player) []*Player {
	ordered := make([]*Player, 0, len(winners))
	n := len(h.players)
	for i := 1; i <= n; i++ {
		seat := (h.button + i) % n
		for _, w := range winners {
			if w.Seat == seat {
				ordered = append(ordered, w)
			}
		}
	}
	return ordered
}

// abort ends the hand after a fatal invariant violation (deck underflow).
// No pot is awarded; stacks stay at their last valid state.
func (h *Hand) abort(err error) error {
	h.street = Settled
	h.acting = -1
	h.result = "hand aborted"
	h.logger.Error("hand aborted", "error", err)
	return fmt.Errorf("hand aborted: %w", err)
}

func (h *Hand) nextActor(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// nextSeated returns the first seat at or after from that is in the hand
func (h *Hand) nextSeated(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.players[seat].Status != StatusSittingOut {
			return seat
		}
	}
	return from % n
}

func (h *Hand) seatedCount() int {
	count := 0
	for _, p := range h.players {
		if p.Status != StatusSittingOut {
			count++
		}
	}
	return count
}

func (h *Hand) inHandCount() int {
	count := 0
	for _, p := range h.players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// publish emits a snapshot to the presenter. Hole cards are included for
// the human seat and, from showdown on, for every seat still in the hand.
func (h *Hand) publish() {
	if h.presenter == nil {
		return
	}

	seats := make([]SeatSnapshot, len(h.players))
	for i, p := range h.players {
		s := SeatSnapshot{
			Seat:       p.Seat,
			Name:       p.Name,
			Human:      p.Human,
			Chips:      p.Chips,
			StreetBet:  p.StreetBet,
			TotalBet:   p.TotalBet,
			Status:     p.Status,
			Dealer:     p.Seat == h.button,
			SmallBlind: p.Seat == h.sbSeat,
			BigBlind:   p.Seat == h.bbSeat,
		}
		if p.Human || (h.street >= Showdown && p.InHand()) {
			s.HoleCards = append([]deck.Card(nil), p.HoleCards...)
		}
		seats[i] = s
	}

	h.presenter.Present(Snapshot{
		Phase:      h.street,
		Community:  append([]deck.Card(nil), h.community...),
		Pot:        h.Pot(),
		ToCall:     h.betting.ToCall,
		Players:    seats,
		ActingSeat: h.ActingSeat(),
		LastResult: h.result,
	})
}

func cardsString(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
