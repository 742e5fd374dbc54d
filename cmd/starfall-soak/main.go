package main

import (
	"flag"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

func main() {
	simSeconds := flag.Float64("sim-seconds", 180, "Simulated game time to run.")
	dt := flag.Float64("dt", 1.0/60, "Fixed timestep in seconds.")
	flag.Parse()

	log.Println("Starting starfall soak run...")

	world := game.NewWorld(game.DefaultWaves())

	report := &Report{
		SimSeconds: *simSeconds,
		Dt:         *dt,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	start := time.Now()

	frames := int(*simSeconds / *dt)
	for frame := 0; frame < frames; frame++ {
		drive(world, frame, *dt)
		world.Scheduler.Once(*dt)
	}

	report.WallTime = time.Since(start)
	report.Frames = frames
	runtime.ReadMemStats(&report.MemStatsEnd)

	state := world.State.Get()
	report.FinalScore = state.Score.Load()
	report.FinalWave = state.WaveCount + 1
	report.FinalPhase = state.Phase
	report.Storage = world.Storage.Stats()
	report.Systems = world.Scheduler.Stats()

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// drive supplies scripted input: a confirm press on the first frame and
// whenever the run has ended, plus a pointer weaving across the stage.
func drive(world *game.World, frame int, dt float64) {
	input := world.Input.Get()
	state := world.State.Get()

	confirm := frame == 0 || state.Phase == game.PhaseEnded
	input.Confirm = ecs.KeyState{Pressed: confirm, PressedThisFrame: confirm}

	t := float64(frame) * dt
	input.Mouse = ecs.MouseState{
		Present: true,
		X:       0.5 + 0.45*math.Sin(t*1.3),
		Y:       0.85,
	}
	input.AspectX, input.AspectY = 480, 800
}
