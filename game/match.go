package game

import (
	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/supply"
	"github.com/plus3/blockfall/tetromino"
)

// Match is one game from first spawn to game over: the board and piece
// supply behind a Controller, and the Session scoring it.
type Match struct {
	ID         uuid.UUID
	Seed       uint64
	Bag        *supply.Bag
	Controller *Controller
	Session    *Session
}

// NewMatch sets up a fresh board and spawns the first piece. rules must be
// valid.
func NewMatch(rules Rules, seed uint64) *Match {
	bag := supply.NewBag(rules.BagCopies, seed)
	ctrl := NewController(
		board.New(rules.Rows, rules.Cols),
		supply.NewQueue(bag, rules.Lookahead),
		rules.HistoryLength,
	)
	ctrl.Spawn()

	return &Match{
		ID:         uuid.New(),
		Seed:       seed,
		Bag:        bag,
		Controller: ctrl,
		Session:    NewSession(rules),
	}
}

// Apply runs one player command. It returns the events it produced and
// whether anything visible changed. Restart is not handled here; the engine
// replaces the whole match for it.
func (m *Match) Apply(cmd Command) ([]Event, bool) {
	s, c := m.Session, m.Controller
	if s.Over() || cmd == Restart {
		return nil, false
	}

	if s.Paused() {
		s.Resume()
		return []Event{{Kind: EventResumed, Score: s.Score, Level: s.Level}}, true
	}

	switch cmd {
	case TogglePause:
		s.Pause()
		return []Event{{Kind: EventPaused, Score: s.Score, Level: s.Level}}, true
	case MoveLeft:
		return nil, c.MoveLeft()
	case MoveRight:
		return nil, c.MoveRight()
	case RotateLeft:
		return nil, c.Rotate(tetromino.Left)
	case RotateRight:
		return nil, c.Rotate(tetromino.Right)
	case MoveDown:
		return m.step(c.MoveDown())
	case HardDrop:
		return m.step(c.Drop())
	case Hold:
		if !c.Hold() {
			return nil, false
		}
		return m.step(true)
	}
	return nil, false
}

// step settles a player-driven move and restarts gravity's countdown.
func (m *Match) step(changed bool) ([]Event, bool) {
	events := m.Session.Settle(m.Controller)
	m.Session.Rearm()
	return events, changed
}

// Tick is one gravity step.
func (m *Match) Tick() ([]Event, bool) {
	if !m.Session.Running() {
		return nil, false
	}
	changed := m.Controller.MoveDown()
	return m.Session.Settle(m.Controller), changed
}

// Snapshot copies the visible state.
func (m *Match) Snapshot() Snapshot {
	c, s := m.Controller, m.Session
	b := c.Board()

	snap := Snapshot{
		MatchID: m.ID,
		Rows:    b.Rows(),
		Cols:    b.Cols(),
		Cells:   b.Cells(),
		CanHold: c.CanHold(),
		Next:    c.Next(),
		Score:   s.Score,
		Level:   s.Level,
		Lines:   s.Lines,
		Paused:  s.Paused(),
		Over:    s.Over(),
	}
	snap.Held, snap.HasHeld = c.Held()

	if active, ok := c.Active(); ok {
		cells := active.Cells()
		snap.Active = cells[:]
		snap.ActiveKind = active.Shape.Kind()
	}
	if ghost, ok := c.Ghost(); ok {
		cells := ghost.Cells()
		snap.Ghost = cells[:]
	}
	return snap
}
