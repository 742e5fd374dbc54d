package game

import "fmt"

// Phase of the run state machine. Start and Ended are both "waiting for
// confirm"; the confirm handler only checks Phase != Running, so a restart
// goes straight from Ended back to Running.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// GameState is the singleton the whole simulation pivots on. Score is atomic
// because kill credit is awarded from parallel iteration; every other field
// is only touched by sequential systems.
type GameState struct {
	Phase Phase
	Score AtomicInt

	// Wave is a copy of the active description; WaveTimer runs negative
	// during the quiet period between waves.
	Wave      WaveDescription
	WaveTimer float64
	WaveCount int

	UpgradeTimers [upgradeTypeCount]float64

	LaserAllyCount int

	// SpawningEnemies gates the enemy spawner; false during inter-wave
	// pauses and outside runs.
	SpawningEnemies bool

	waves []WaveDescription
}

func NewGameState(waves []WaveDescription) GameState {
	return GameState{waves: waves}
}

// StartRun resets the state for a fresh run. Safe to call from any phase.
func (g *GameState) StartRun() {
	g.Phase = PhaseRunning
	g.Score.Store(0)

	g.Wave = g.waves[0]
	g.WaveTimer = 0
	g.WaveCount = 0

	for i := range g.UpgradeTimers {
		g.UpgradeTimers[i] = 0
	}

	g.LaserAllyCount = 0
	g.SpawningEnemies = false
}

// AdvanceWave moves to the next wave with a quiet period before it starts
// spawning. After the last wave its description is kept indefinitely.
func (g *GameState) AdvanceWave() {
	g.WaveTimer = -SecondsBetweenWaves
	g.WaveCount++
	g.SpawningEnemies = false

	if g.WaveCount < len(g.waves) {
		g.Wave = g.waves[g.WaveCount]
	}
}

func (g *GameState) AddScore(n int64) {
	g.Score.Add(n)
}
