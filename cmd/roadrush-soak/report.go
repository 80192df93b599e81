package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/roadrush/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	FPS      int
	Seed     uint64

	// Results
	Frames          int
	Resets          int
	Interrupted     bool
	PlayerLost      bool
	PlayerLostFrame uint64
	Score           uint32
	HighScore       uint32
	Enemies         int
	SfxPlayed       int
	TotalTime       time.Duration
	UpdateTime      Stats
	Scheduler       *ecs.SchedulerStats
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Roadrush Soak Report

## Run
- **Game Time:** {{.Duration}} at {{.FPS}} fps (seed {{.Seed}})
- **Frames:** {{.Frames}}{{if .Interrupted}} (interrupted){{end}}
- **Wall Time:** {{.TotalTime}}
- **Resets Pressed:** {{.Resets}}

## Game
- **Score:** {{.Score}}
- **High Score:** {{.HighScore}}
- **Enemies On Screen:** {{.Enemies}}
- **Sfx Played:** {{.SfxPlayed}}
- **Player Present Throughout:** {{if .PlayerLost}}no (lost at frame {{.PlayerLostFrame}}){{else}}yes{{end}}

## Step Time
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end)
- Total Alloc: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MiB during run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) uint64 {
		if a < b {
			return 0
		}
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
