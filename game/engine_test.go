package game_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recorder collects every event delivered to a subscription.
type recorder struct {
	events []game.Event
}

func (r *recorder) notify(ev game.Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []game.EventKind {
	out := make([]game.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *recorder) last(kind game.EventKind) (game.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return game.Event{}, false
}

func (r *recorder) reset() { r.events = nil }

func newEngine(t *testing.T, rules game.Rules) (*game.Engine, *recorder) {
	t.Helper()
	e, err := game.New(rules, nil)
	require.NoError(t, err)
	rec := &recorder{}
	e.Subscribe(rec.notify)
	return e, rec
}

func topRow(cells []tetromino.Coord) int {
	top := cells[0].Row
	for _, c := range cells[1:] {
		top = min(top, c.Row)
	}
	return top
}

func TestNewRejectsInvalidRules(t *testing.T) {
	rules := game.DefaultRules()
	rules.Rows = 2

	_, err := game.New(rules, nil)
	assert.ErrorIs(t, err, game.ErrInvalidRules)
}

func TestEngineStartsPaused(t *testing.T) {
	rules := testRules()
	rules.StartPaused = true
	e, rec := newEngine(t, rules)

	snap := e.Snapshot()
	require.True(t, snap.Paused)
	require.Len(t, snap.Active, tetromino.CellCount)
	assert.Equal(t, time.Duration(0), e.NextTick())

	e.Advance(time.Minute)
	assert.Empty(t, rec.events, "gravity does not run while paused")

	// The first command only resumes.
	e.Dispatch(game.MoveLeft)
	assert.Equal(t, []game.EventKind{game.EventResumed, game.EventChanged}, rec.kinds())
	assert.Equal(t, snap.Active, e.Snapshot().Active)
	assert.Equal(t, rules.BaseInterval, e.NextTick())
}

func TestTogglePause(t *testing.T) {
	e, rec := newEngine(t, testRules())

	e.Dispatch(game.TogglePause)
	assert.Equal(t, []game.EventKind{game.EventPaused, game.EventChanged}, rec.kinds())
	assert.True(t, e.Snapshot().Paused)

	rec.reset()
	e.Dispatch(game.TogglePause)
	assert.Equal(t, []game.EventKind{game.EventResumed, game.EventChanged}, rec.kinds())
	assert.False(t, e.Snapshot().Paused)
}

func TestGravity(t *testing.T) {
	e, rec := newEngine(t, testRules())
	start := topRow(e.Snapshot().Active)

	e.Advance(1999 * time.Millisecond)
	assert.Empty(t, rec.events)
	assert.Equal(t, start, topRow(e.Snapshot().Active))

	e.Advance(time.Millisecond)
	assert.Equal(t, start+1, topRow(e.Snapshot().Active))
	assert.Equal(t, []game.EventKind{game.EventChanged}, rec.kinds())

	e.Advance(4 * time.Second)
	assert.Equal(t, start+3, topRow(e.Snapshot().Active), "one row per elapsed interval")
}

func TestMoveDownRearmsGravity(t *testing.T) {
	e, _ := newEngine(t, testRules())
	start := topRow(e.Snapshot().Active)

	e.Advance(1500 * time.Millisecond)
	e.Dispatch(game.MoveDown)
	assert.Equal(t, start+1, topRow(e.Snapshot().Active))
	assert.Equal(t, 2*time.Second, e.NextTick())

	e.Advance(1500 * time.Millisecond)
	assert.Equal(t, start+1, topRow(e.Snapshot().Active), "the countdown restarted")
}

func TestHoldThroughEngine(t *testing.T) {
	e, _ := newEngine(t, testRules())
	before := e.Snapshot()

	e.Dispatch(game.Hold)
	after := e.Snapshot()
	require.True(t, after.HasHeld)
	assert.Equal(t, before.ActiveKind, after.Held.Kind())
	assert.Equal(t, before.Next[0].Kind(), after.ActiveKind)
	assert.False(t, after.CanHold)

	e.Dispatch(game.Hold)
	assert.Equal(t, after.ActiveKind, e.Snapshot().ActiveKind)
}

func TestUnsubscribe(t *testing.T) {
	e, rec := newEngine(t, testRules())

	var selfRemoving recorder
	var sub game.Subscription
	sub = e.Subscribe(func(ev game.Event) {
		selfRemoving.notify(ev)
		e.Unsubscribe(sub)
	})

	e.Dispatch(game.MoveLeft)
	e.Dispatch(game.MoveLeft)

	assert.Len(t, selfRemoving.events, 1)
	assert.Len(t, rec.events, 2)
	assert.Equal(t, 1, e.StorageStats().TotalEntityCount)
}

func TestChangedSnapshotsAreCopies(t *testing.T) {
	e, rec := newEngine(t, testRules())

	e.Dispatch(game.HardDrop)
	changed, ok := rec.last(game.EventChanged)
	require.True(t, ok)
	require.NotNil(t, changed.Snapshot)

	frozen := append([]tetromino.Color(nil), changed.Snapshot.Cells...)
	for range 3 {
		e.Dispatch(game.HardDrop)
	}
	assert.Equal(t, frozen, changed.Snapshot.Cells)
}

func TestHardDropScoresALock(t *testing.T) {
	e, rec := newEngine(t, testRules())

	e.Dispatch(game.HardDrop)
	assert.Equal(t,
		[]game.EventKind{game.EventLocked, game.EventScore, game.EventChanged},
		rec.kinds())

	snap := e.Snapshot()
	assert.Equal(t, int64(100), snap.Score)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 2*time.Second, e.NextTick())
}

func TestEngineGameOver(t *testing.T) {
	e, rec := newEngine(t, testRules())

	for i := 0; i < 500 && !e.Snapshot().Over; i++ {
		e.Dispatch(game.HardDrop)
	}
	snap := e.Snapshot()
	require.True(t, snap.Over)
	assert.Empty(t, snap.Active)
	assert.Equal(t, time.Duration(0), e.NextTick())

	over, ok := rec.last(game.EventGameOver)
	require.True(t, ok)
	assert.Equal(t, snap.Score, over.Score)
	assert.Positive(t, over.Score)

	rec.reset()
	for _, cmd := range game.Commands() {
		if cmd != game.Restart {
			e.Dispatch(cmd)
		}
	}
	e.Advance(time.Minute)
	assert.Empty(t, rec.events, "a finished match ignores everything but restart")
	assert.Equal(t, snap, e.Snapshot())
}

func TestRestart(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e, err := game.New(testRules(), zap.New(core))
	require.NoError(t, err)
	rec := &recorder{}
	e.Subscribe(rec.notify)

	first := e.MatchID()
	e.Dispatch(game.HardDrop)
	require.Positive(t, e.Snapshot().Score)

	e.Dispatch(game.Restart)
	assert.NotEqual(t, first, e.MatchID())
	assert.Equal(t, e.MatchID(), e.Snapshot().MatchID)

	started, ok := rec.last(game.EventStarted)
	require.True(t, ok)
	assert.Equal(t, 1, started.Level)

	snap := e.Snapshot()
	assert.Equal(t, int64(0), snap.Score)
	assert.Len(t, snap.Active, tetromino.CellCount)
	for _, c := range snap.Cells {
		assert.Equal(t, tetromino.ColorNone, c)
	}

	assert.Equal(t, 2, logs.FilterMessage("match started").Len())
	assert.Equal(t, 1, logs.FilterMessage("match restarted").Len())
}

func TestDispatchFromListenerRunsAfterDelivery(t *testing.T) {
	e, err := game.New(testRules(), nil)
	require.NoError(t, err)

	reacted := false
	e.Subscribe(func(ev game.Event) {
		if ev.Kind == game.EventChanged && !reacted {
			reacted = true
			e.Dispatch(game.MoveLeft)
		}
	})
	later := &recorder{}
	e.Subscribe(later.notify)

	e.Dispatch(game.MoveRight)

	require.True(t, reacted)
	assert.Equal(t, []game.EventKind{game.EventChanged, game.EventChanged}, later.kinds(),
		"the follow-up frame is delivered after the first one")
	last, ok := later.last(game.EventChanged)
	require.True(t, ok)
	assert.Equal(t, e.Snapshot().Active, last.Snapshot.Active)
	assert.NotEqual(t, e.Snapshot().Active, later.events[0].Snapshot.Active,
		"the first frame's snapshot still shows the piece moved right")
	assert.Equal(t, int64(2), e.Stats().Frames)
}

func TestAdvanceFromListenerIsDeferred(t *testing.T) {
	e, err := game.New(testRules(), nil)
	require.NoError(t, err)
	start := topRow(e.Snapshot().Active)

	advanced := false
	e.Subscribe(func(ev game.Event) {
		if !advanced {
			advanced = true
			e.Advance(2 * time.Second)
		}
	})

	e.Dispatch(game.MoveLeft)
	assert.Equal(t, start+1, topRow(e.Snapshot().Active))
	assert.Equal(t, int64(2), e.Stats().Frames)
}

func TestRestartResumesAPausedStart(t *testing.T) {
	rules := testRules()
	rules.StartPaused = true
	e, rec := newEngine(t, rules)
	require.True(t, e.Snapshot().Paused)

	e.Dispatch(game.Restart)

	assert.False(t, e.Snapshot().Paused)
	assert.Equal(t, rules.BaseInterval, e.NextTick())
	assert.Equal(t, []game.EventKind{game.EventStarted, game.EventChanged}, rec.kinds())
}

func TestSameSeedSameMatch(t *testing.T) {
	a, _ := newEngine(t, testRules())
	b, _ := newEngine(t, testRules())

	for range 20 {
		a.Dispatch(game.HardDrop)
		b.Dispatch(game.HardDrop)
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	assert.Equal(t, sa.Cells, sb.Cells)
	assert.Equal(t, sa.Score, sb.Score)
	assert.NotEqual(t, sa.MatchID, sb.MatchID)
}

func TestRun(t *testing.T) {
	t.Run("closed input", func(t *testing.T) {
		e, rec := newEngine(t, testRules())
		input := make(chan game.Command, 3)
		input <- game.MoveLeft
		input <- game.MoveLeft
		input <- game.HardDrop
		close(input)

		require.NoError(t, e.Run(context.Background(), input, time.Hour))
		_, ok := rec.last(game.EventLocked)
		assert.True(t, ok)
	})

	t.Run("cancelled", func(t *testing.T) {
		e, _ := newEngine(t, testRules())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := e.Run(ctx, make(chan game.Command), time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngineStats(t *testing.T) {
	e, _ := newEngine(t, testRules())
	e.Dispatch(game.MoveLeft)
	e.Advance(time.Second)

	stats := e.Stats()
	assert.Equal(t, 3, stats.SystemCount)
	assert.Equal(t, int64(2), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	storage := e.StorageStats()
	assert.Equal(t, 1, storage.TotalEntityCount)
	assert.GreaterOrEqual(t, storage.SingletonCount, 4)
}

func ExampleEngine() {
	rules := game.DefaultRules()
	rules.Seed = 7

	e, err := game.New(rules, nil)
	if err != nil {
		panic(err)
	}
	e.Subscribe(func(ev game.Event) {
		if ev.Kind != game.EventChanged {
			fmt.Println(ev)
		}
	})

	e.Dispatch(game.MoveDown) // resumes the paused match
	e.Dispatch(game.HardDrop)
	e.Dispatch(game.TogglePause)

	// Output:
	// resumed
	// locked(0)
	// score(100)
	// paused
}
