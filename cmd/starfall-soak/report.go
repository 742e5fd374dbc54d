package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

type Report struct {
	// Configuration
	SimSeconds float64
	Dt         float64

	// Results
	Frames     int
	WallTime   time.Duration
	FinalScore int64
	FinalWave  int
	FinalPhase game.Phase
	Storage    ecs.StorageStats
	Systems    *ecs.SchedulerStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# starfall soak report

## Run
- **Simulated Time:** {{.SimSeconds}}s ({{.Frames}} frames @ {{.Dt}}s)
- **Wall Time:** {{.WallTime}}
- **Final Phase:** {{.FinalPhase}}
- **Final Score:** {{.FinalScore}}
- **Final Wave:** {{.FinalWave}}
- **Live Entities:** {{.Storage.EntityCount}} across {{.Storage.ArchetypeCount}} archetypes

## Systems
{{range .Systems.Systems}}- {{.Name}}: avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Memory (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:  {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
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

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
