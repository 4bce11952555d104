package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/game"
)

// Report accumulates the run's configuration and results.
type Report struct {
	Duration    time.Duration
	Rows, Cols  int
	Seed        uint64
	GravityStep time.Duration

	Commands  int64
	TotalTime time.Duration
	FrameTime Stats
	Scheduler *ecs.SchedulerStats

	Matches   int
	Locks     int
	Lines     int
	BestScore int64
	BestLevel int
	Scores    []int64

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarises a set of duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// observe tallies engine events.
func (r *Report) observe(ev game.Event) {
	switch ev.Kind {
	case game.EventLocked:
		r.Locks++
		r.Lines += ev.Lines
	case game.EventGameOver:
		r.recordScore(ev.Score, ev.Level)
	}
}

// finishMatch counts a match still in progress when the run ends.
func (r *Report) finishMatch(snap game.Snapshot) {
	if !snap.Over {
		r.recordScore(snap.Score, snap.Level)
	}
}

func (r *Report) recordScore(score int64, level int) {
	r.Matches++
	r.Scores = append(r.Scores, score)
	r.BestScore = max(r.BestScore, score)
	r.BestLevel = max(r.BestLevel, level)
}

// MeanScore is the average final score over every match.
func (r *Report) MeanScore() int64 {
	if len(r.Scores) == 0 {
		return 0
	}
	var total int64
	for _, s := range r.Scores {
		total += s
	}
	return total / int64(len(r.Scores))
}

const reportTemplate = `
# Blockfall Bench Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Board:** {{.Rows}}x{{.Cols}}
- **Seed:** {{.Seed}}
- **Gravity Step:** {{.GravityStep}}

## Play
- **Commands:** {{.Commands}}
- **Matches:** {{.Matches}}
- **Locks:** {{.Locks}}
- **Lines:** {{.Lines}}
- **Best Score:** {{.BestScore}} (level {{.BestLevel}})
- **Mean Score:** {{.MeanScore}}

## Frame Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}
- **P99:** {{.FrameTime.P99}}
{{with .Scheduler}}
## Systems ({{.Frames}} frames)
{{range .Systems}}- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
