// Package game is the falling-block engine: a piece Controller over the
// board and piece supply, a scoring Session, and an Engine that runs them as
// a single-threaded actor on top of the ecs scheduler.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/ecs"
	"go.uber.org/zap"
)

// Subscription identifies a listener registered with Subscribe.
type Subscription ecs.EntityId

// Engine owns the current match and applies commands and time to it. It is
// not safe for concurrent use; drive it from one goroutine, or hand commands
// to Run.
type Engine struct {
	rules  Rules
	logger *zap.Logger
	seeds  *rand.Rand

	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	match *ecs.Singleton[Match]
	input *ecs.Singleton[InputQueue]
	clock *ecs.Singleton[Clock]

	// inFrame is set while the scheduler runs, including the flush that
	// delivers events. Work requested then is queued for a follow-up frame.
	inFrame bool
	pending time.Duration
}

// New validates rules and starts the first match. A nil logger disables
// logging.
func New(rules Rules, logger *zap.Logger) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("game: new engine: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := rules.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	e := &Engine{
		rules:  rules,
		logger: logger,
		seeds:  rand.New(rand.NewPCG(seed, seed>>1|1)),
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Listener](registry)
	e.storage = ecs.NewStorage(registry)

	e.storage.AddSingleton(Outbox{})
	e.match = ecs.NewSingleton[Match](e.storage, *e.newMatch(false))
	e.input = ecs.NewSingleton[InputQueue](e.storage)
	e.clock = ecs.NewSingleton[Clock](e.storage)

	e.scheduler = ecs.NewScheduler(e.storage)
	e.scheduler.Register(&InputSystem{restart: func() *Match { return e.newMatch(true) }, logger: logger})
	e.scheduler.Register(&GravitySystem{logger: logger})
	e.scheduler.Register(&NotifySystem{})

	return e, nil
}

// newMatch builds the next match. A restarted match always starts running,
// whatever StartPaused says.
func (e *Engine) newMatch(restarted bool) *Match {
	m := NewMatch(e.rules, e.seeds.Uint64())
	if restarted {
		m.Session.Resume()
	}
	e.logger.Info("match started",
		zap.Stringer("match_id", m.ID),
		zap.Uint64("seed", m.Seed),
		zap.Int("rows", e.rules.Rows),
		zap.Int("cols", e.rules.Cols),
		zap.Bool("paused", m.Session.Paused()))
	return m
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// MatchID identifies the current match.
func (e *Engine) MatchID() uuid.UUID { return e.match.Get().ID }

// Subscribe registers fn for every future event. Events are delivered after
// the frame that produced them, in order.
func (e *Engine) Subscribe(fn func(Event)) Subscription {
	return Subscription(e.storage.Spawn(Listener{Notify: fn}))
}

// Unsubscribe removes a listener. It is safe to call from inside a
// listener.
func (e *Engine) Unsubscribe(sub Subscription) {
	e.storage.Delete(ecs.EntityId(sub))
}

// Dispatch applies one command immediately. Called from a listener, the
// command runs in a new frame once the current frame's events have reached
// every listener.
func (e *Engine) Dispatch(cmd Command) {
	in := e.input.Get()
	in.Commands = append(in.Commands, cmd)
	e.frame(0)
}

// Advance moves simulated time forward, letting gravity tick. Like Dispatch
// it is deferred to a follow-up frame when called from a listener.
func (e *Engine) Advance(dt time.Duration) {
	e.frame(dt)
}

func (e *Engine) frame(dt time.Duration) {
	e.pending += dt
	if e.inFrame {
		return
	}

	e.inFrame = true
	defer func() { e.inFrame = false }()

	clock := e.clock.Get()
	for first := true; first || e.pending > 0 || len(e.input.Get().Commands) > 0; first = false {
		dt, e.pending = e.pending, 0
		clock.Delta = dt
		e.scheduler.Once(dt.Seconds())
		clock.Delta = 0
	}
}

// Snapshot returns the current visible state.
func (e *Engine) Snapshot() Snapshot {
	return e.match.Get().Snapshot()
}

// NextTick is the time left until gravity next moves the piece, or zero
// while paused or over.
func (e *Engine) NextTick() time.Duration {
	return e.match.Get().Session.Timer.Remaining()
}

// Stats reports per-system timings.
func (e *Engine) Stats() *ecs.SchedulerStats {
	return e.scheduler.GetStats()
}

// StorageStats reports what the engine's world holds.
func (e *Engine) StorageStats() ecs.StorageStats {
	return e.storage.CollectStats()
}

// Run serialises commands from input and frame ticks onto the engine until
// ctx is cancelled or input is closed. Each event is fully applied before
// the next is read.
func (e *Engine) Run(ctx context.Context, input <-chan Command, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-input:
			if !ok {
				return nil
			}
			e.Dispatch(cmd)
		case now := <-ticker.C:
			e.Advance(now.Sub(last))
			last = now
		}
	}
}
