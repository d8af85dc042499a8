package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Tick     time.Duration
	Pets     int
	Seed     uint64
	Realtime bool

	// Results
	TotalTime     time.Duration
	TickTime      Stats
	Behavior      scene.Stats
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the scene's counters and system timings into the report.
func (r *Report) Collect(s *scene.Scene) {
	r.Behavior = *s.Stats()
	r.Systems = s.Update.GetStats().Systems
}

// StateRow is one line of the occupancy table.
type StateRow struct {
	State   behavior.State
	Seconds float64
	Share   float64
	Entered uint64
}

func (r *Report) States() []StateRow {
	rows := make([]StateRow, 0, behavior.NumStates)
	for s := behavior.State(0); s < behavior.NumStates; s++ {
		rows = append(rows, StateRow{
			State:   s,
			Seconds: r.Behavior.Occupancy[s],
			Share:   100 * r.Behavior.OccupancyShare(s),
			Entered: r.Behavior.Entered[s],
		})
	}
	return rows
}

// TransitionRow is one "from" row of the transition matrix.
type TransitionRow struct {
	From   behavior.State
	Counts []uint64
}

func (r *Report) Transitions() []TransitionRow {
	rows := make([]TransitionRow, 0, behavior.NumStates)
	for from := behavior.State(0); from < behavior.NumStates; from++ {
		rows = append(rows, TransitionRow{
			From:   from,
			Counts: r.Behavior.Transitions[from][:],
		})
	}
	return rows
}

func (r *Report) StateNames() []behavior.State {
	names := make([]behavior.State, behavior.NumStates)
	for i := range names {
		names[i] = behavior.State(i)
	}
	return names
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Capybara Simulation Report

## Configuration
- **Simulated Duration:** {{.Duration}}
- **Tick:** {{.Tick}}{{if .Realtime}} (wall-clock){{end}}
- **Pets:** {{.Pets}}
- **Seed:** {{.Seed}}

## Behavior
- **Ticks:** {{.Behavior.Ticks}}
- **Simulated Time:** {{printf "%.1f" .Behavior.Elapsed}}s
- **Transitions:** {{.Behavior.TotalTransitions}}

| State | Pet-seconds | Share | Entered |
|---|---|---|---|
{{- range .States}}
| {{.State}} | {{printf "%.1f" .Seconds}} | {{printf "%.1f" .Share}}% | {{.Entered}} |
{{- end}}

### Transitions (row = from, column = to)

| | {{range .StateNames}}{{.}} | {{end}}
|---|{{range .StateNames}}---|{{end}}
{{- range .Transitions}}
| **{{.From}}** | {{range .Counts}}{{.}} | {{end}}
{{- end}}

## Performance
- **Total Wall Time:** {{.TotalTime}}
{{- if .TickTime.Samples}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{- end}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{avg .}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"avg": func(s ecs.SystemStats) time.Duration {
			if s.ExecutionCount == 0 {
				return 0
			}
			return s.TotalDuration / time.Duration(s.ExecutionCount)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
