package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/tetromino"
)

// EventKind identifies what an Event reports.
type EventKind uint8

const (
	// EventChanged carries a fresh Snapshot after anything visible changed.
	EventChanged EventKind = iota
	EventScore
	EventLevel
	// EventLocked reports a lock and the number of lines it removed.
	EventLocked
	EventPaused
	EventResumed
	// EventGameOver carries the final score.
	EventGameOver
	// EventStarted is sent when a new session begins after a restart.
	EventStarted
)

var eventNames = [...]string{
	EventChanged:  "changed",
	EventScore:    "score",
	EventLevel:    "level",
	EventLocked:   "locked",
	EventPaused:   "paused",
	EventResumed:  "resumed",
	EventGameOver: "game-over",
	EventStarted:  "started",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is delivered to subscribers after the frame in which it happened.
type Event struct {
	Kind  EventKind
	Score int64
	Level int
	// Lines is set on EventLocked.
	Lines    int
	Snapshot *Snapshot
}

func (e Event) String() string {
	switch e.Kind {
	case EventScore, EventGameOver:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Score)
	case EventLevel:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Level)
	case EventLocked:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Lines)
	}
	return e.Kind.String()
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	MatchID uuid.UUID

	Rows, Cols int
	// Cells holds the locked cells row-major; the active piece is not
	// painted in.
	Cells  []tetromino.Color
	Active []tetromino.Coord
	Ghost  []tetromino.Coord
	// ActiveKind is meaningful when Active is non-empty.
	ActiveKind tetromino.Kind

	Held    tetromino.Shape
	HasHeld bool
	CanHold bool
	Next    []tetromino.Shape

	Score  int64
	Level  int
	Lines  int
	Paused bool
	Over   bool
}

// Cell returns the color to draw at (row, col): the active piece first,
// then locked cells.
func (s *Snapshot) Cell(row, col int) tetromino.Color {
	c := tetromino.Coord{Row: row, Col: col}
	for _, a := range s.Active {
		if a == c {
			return s.ActiveKind.Color()
		}
	}
	return s.Cells[row*s.Cols+col]
}

// IsGhost reports whether (row, col) is part of the hard-drop projection and
// not covered by the active piece.
func (s *Snapshot) IsGhost(row, col int) bool {
	c := tetromino.Coord{Row: row, Col: col}
	for _, a := range s.Active {
		if a == c {
			return false
		}
	}
	for _, g := range s.Ghost {
		if g == c {
			return true
		}
	}
	return false
}
