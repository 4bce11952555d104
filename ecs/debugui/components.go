package debugui

import (
	"time"

	"github.com/plus3/blockfall/ecs"
)

// StatsSource is the world the panels report on. It is usually a different
// world from the one the panels themselves live in.
type StatsSource interface {
	Stats() *ecs.SchedulerStats
	StorageStats() ecs.StorageStats
}

// PerformancePanel shows frame times and per-system timings.
type PerformancePanel struct {
	source  StatsSource
	history []float32
	index   int
	filled  int
}

// ArchetypePanel lists the source world's archetypes in a sortable table.
type ArchetypePanel struct {
	source    StatsSource
	rows      []ecs.ArchetypeStats
	column    archetypeColumn
	ascending bool
}

// FrameTimer measures wall time between calls to Delta.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Delta returns the seconds elapsed since the previous call.
func (ft *FrameTimer) Delta() float64 {
	now := time.Now()
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	return delta
}
