package game

import (
	"math"
	"time"
)

// FallTimer is the gravity countdown. It is a plain value advanced by the
// frame clock, so re-arming simply replaces the previous countdown and two
// tick sources can never overlap.
type FallTimer struct {
	Interval time.Duration
	elapsed  time.Duration
	armed    bool
}

// Arm restarts the countdown with a new interval.
func (t *FallTimer) Arm(interval time.Duration) {
	t.Interval = interval
	t.elapsed = 0
	t.armed = true
}

// Disarm cancels the countdown.
func (t *FallTimer) Disarm() {
	t.elapsed = 0
	t.armed = false
}

// Armed reports whether the timer is counting.
func (t *FallTimer) Armed() bool { return t.armed }

// Remaining is the time until the next tick, or zero when disarmed.
func (t *FallTimer) Remaining() time.Duration {
	if !t.armed {
		return 0
	}
	return t.Interval - t.elapsed
}

// Advance moves the countdown forward by dt and returns how many ticks fell
// due.
func (t *FallTimer) Advance(dt time.Duration) int {
	if !t.armed || t.Interval <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	ticks := int(t.elapsed / t.Interval)
	t.elapsed -= time.Duration(ticks) * t.Interval
	return ticks
}

// Session keeps score and pacing for one game. It reads lock outcomes from a
// Controller and scores each lock exactly once.
type Session struct {
	rules Rules

	Score  int64
	Level  int
	Lines  int
	Breaks int

	paused    bool
	over      bool
	accounted int

	Timer FallTimer
}

// NewSession starts at level 1 with zero score. With StartPaused the timer
// stays disarmed until Resume.
func NewSession(rules Rules) *Session {
	s := &Session{rules: rules, Level: 1, paused: rules.StartPaused}
	if !s.paused {
		s.Timer.Arm(s.Interval())
	}
	return s
}

// Interval is the gravity period at the current level.
func (s *Session) Interval() time.Duration {
	return s.rules.FallInterval(s.Level)
}

// Paused reports whether play is suspended.
func (s *Session) Paused() bool { return s.paused }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.over }

// Running is true when neither paused nor over.
func (s *Session) Running() bool { return !s.paused && !s.over }

// Pause stops the timer without losing any state.
func (s *Session) Pause() bool {
	if !s.Running() {
		return false
	}
	s.paused = true
	s.Timer.Disarm()
	return true
}

// Resume re-arms the timer at the current level's interval.
func (s *Session) Resume() bool {
	if !s.paused || s.over {
		return false
	}
	s.paused = false
	s.Timer.Arm(s.Interval())
	return true
}

// Rearm restarts gravity's countdown after a player-driven step.
func (s *Session) Rearm() {
	if s.Running() {
		s.Timer.Arm(s.Interval())
	}
}

// Settle scores every lock the controller has made since the last call and
// detects game over. It returns the resulting events in order.
func (s *Session) Settle(ctrl *Controller) []Event {
	var events []Event

	history := ctrl.History()
	pending := ctrl.Locks() - s.accounted
	for i := pending - 1; i >= 0; i-- {
		lines := 0
		if i < len(history) {
			lines = history[i]
		}
		events = s.score(lines, events)
	}
	s.accounted = ctrl.Locks()

	if ctrl.State() == StateGameOver && !s.over {
		s.over = true
		s.paused = false
		s.Timer.Disarm()
		events = append(events, Event{Kind: EventGameOver, Score: s.Score, Level: s.Level})
	}
	return events
}

// score applies one lock that removed n lines.
func (s *Session) score(n int, events []Event) []Event {
	n = min(max(n, 0), len(s.rules.LineMultipliers)-1)

	delta := (1 + s.rules.LevelBonus*float64(s.Level-1)) * s.rules.BaseLineScore * s.rules.LineMultipliers[n]
	events = append(events, Event{Kind: EventLocked, Lines: n, Score: s.Score, Level: s.Level})

	levelled := false
	if n > 0 {
		s.Lines += n
		s.Breaks++
		if s.Breaks%s.rules.BreaksPerLevel == 0 {
			s.Level++
			delta *= s.rules.LevelUpMultiplier
			levelled = true
			s.Rearm()
		}
	}

	if gained := int64(math.Round(delta)); gained != 0 {
		s.Score += gained
		events = append(events, Event{Kind: EventScore, Score: s.Score, Level: s.Level})
	}
	if levelled {
		events = append(events, Event{Kind: EventLevel, Score: s.Score, Level: s.Level})
	}
	return events
}
