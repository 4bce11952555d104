package game

import (
	"time"

	"github.com/plus3/blockfall/ecs"
	"go.uber.org/zap"
)

// InputQueue buffers decoded commands until the next frame.
type InputQueue struct {
	Commands []Command
}

// Clock is the frame's simulated time step.
type Clock struct {
	Delta   time.Duration
	Elapsed time.Duration
}

// Outbox collects the frame's events until NotifySystem hands them out.
type Outbox struct {
	Events []Event
	Dirty  bool
}

func (o *Outbox) add(events []Event, changed bool) {
	o.Events = append(o.Events, events...)
	o.Dirty = o.Dirty || changed || len(events) > 0
}

// Listener is the component behind a subscription.
type Listener struct {
	Notify func(Event)
}

// InputSystem applies every queued command to the current match. Restart
// replaces the match with a fresh one.
type InputSystem struct {
	Match  ecs.Singleton[Match]
	Input  ecs.Singleton[InputQueue]
	Outbox ecs.Singleton[Outbox]

	restart func() *Match
	logger  *zap.Logger
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue, outbox := s.Input.Get(), s.Outbox.Get()
	for _, cmd := range queue.Commands {
		m := s.Match.Get()
		if cmd == Restart {
			s.logger.Info("match restarted",
				zap.Stringer("previous_match_id", m.ID),
				zap.Int64("score", m.Session.Score))
			*m = *s.restart()
			outbox.add([]Event{{Kind: EventStarted, Level: m.Session.Level}}, true)
			continue
		}

		events, changed := m.Apply(cmd)
		logEvents(s.logger, m, events)
		outbox.add(events, changed)
	}
	queue.Commands = queue.Commands[:0]
}

// GravitySystem advances the fall timer by the frame's clock and moves the
// piece down once per tick that fell due.
type GravitySystem struct {
	Match  ecs.Singleton[Match]
	Clock  ecs.Singleton[Clock]
	Outbox ecs.Singleton[Outbox]

	logger *zap.Logger
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	clock, m := s.Clock.Get(), s.Match.Get()
	clock.Elapsed += clock.Delta

	ticks := m.Session.Timer.Advance(clock.Delta)
	for range ticks {
		events, changed := m.Tick()
		logEvents(s.logger, m, events)
		s.Outbox.Get().add(events, changed)
		if !m.Session.Running() {
			break
		}
	}
}

// NotifySystem hands the frame's events to every listener once the frame has
// been flushed. A dirty frame ends with an EventChanged snapshot.
type NotifySystem struct {
	Listeners ecs.Query[struct{ *Listener }]
	Match     ecs.Singleton[Match]
	Outbox    ecs.Singleton[Outbox]
}

func (s *NotifySystem) Execute(frame *ecs.UpdateFrame) {
	outbox := s.Outbox.Get()
	if !outbox.Dirty {
		return
	}

	events := outbox.Events
	snap := s.Match.Get().Snapshot()
	events = append(events, Event{Kind: EventChanged, Score: snap.Score, Level: snap.Level, Snapshot: &snap})

	outbox.Events = nil
	outbox.Dirty = false

	for l := range s.Listeners.Values() {
		notify := l.Listener.Notify
		frame.Commands.Defer(func() {
			for _, ev := range events {
				notify(ev)
			}
		})
	}
}

func logEvents(logger *zap.Logger, m *Match, events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventLocked:
			logger.Debug("piece locked",
				zap.Stringer("match_id", m.ID),
				zap.Int("lines", ev.Lines),
				zap.Int("locks", m.Controller.Locks()))
		case EventLevel:
			logger.Info("level up",
				zap.Stringer("match_id", m.ID),
				zap.Int("level", ev.Level),
				zap.Int("lines", m.Session.Lines),
				zap.Duration("interval", m.Session.Interval()))
		case EventGameOver:
			logger.Info("game over",
				zap.Stringer("match_id", m.ID),
				zap.Int64("score", ev.Score),
				zap.Int("level", ev.Level),
				zap.Int("lines", m.Session.Lines))
		case EventPaused, EventResumed:
			logger.Debug(ev.Kind.String(), zap.Stringer("match_id", m.ID))
		}
	}
}
