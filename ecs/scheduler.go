package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTiming struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *systemTiming) record(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	t.min = min(t.min, d)
	t.max = max(t.max, d)
}

// queryField and singletonField are satisfied by *Query[T] and
// *Singleton[T] for any T.
type queryField interface {
	Init(*Storage)
	Execute()
}

type singletonField interface {
	Init(*Storage)
}

// Scheduler runs registered systems in order, one frame at a time.
type Scheduler struct {
	storage *Storage
	systems []System
	queries []queryField
	timings []*systemTiming
	frames  int64
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.timings = append(s.timings, &systemTiming{
		name: t.Name(),
		min:  time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		switch f := field.Addr().Interface().(type) {
		case queryField:
			f.Init(s.storage)
			s.queries = append(s.queries, f)
		case singletonField:
			f.Init(s.storage)
		}
	}
}

// Once runs one frame: every query is executed, then every system in
// registration order, then the frame's commands are flushed.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, q := range s.queries {
		q.Execute()
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
	s.frames++
}

// Run executes frames at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timings)),
	}

	for i, t := range s.timings {
		var avg time.Duration
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
		}
		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    t.min,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
		stats.TotalExecutions += t.count
	}
	return stats
}
