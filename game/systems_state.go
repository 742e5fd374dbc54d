package game

import "github.com/plus3/starfall/ecs"

type playerTagView struct {
	*Player
}

type restartTagView struct {
	*DespawnOnRestart
}

// GameStateSystem drives the run state machine. Outside a run, a confirm
// edge (key press or a fresh touch) clears the previous run's entities and
// starts a new one. While running it advances the wave clock and ends the
// run when the player entity is gone.
type GameStateSystem struct {
	Assets *ecs.Assets

	State   ecs.Singleton[GameState]
	Input   ecs.Singleton[ecs.Input]
	Players ecs.Query[playerTagView]
	Tagged  ecs.Query[restartTagView]
}

func (s *GameStateSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	input := s.Input.Get()

	if state.Phase != PhaseRunning {
		confirmed := input.Confirm.PressedThisFrame ||
			(len(input.Touches) == 1 && input.Touches[0].Phase == ecs.TouchBegan)
		if !confirmed {
			return
		}

		for id := range s.Tagged.Iter() {
			frame.Commands.Delete(id)
		}

		state.StartRun()
		spawnPlayer(frame.Commands, s.Assets)
		return
	}

	state.WaveTimer += frame.DeltaTime
	state.SpawningEnemies = state.WaveTimer >= 0

	if state.WaveTimer > state.Wave.Duration {
		state.AdvanceWave()
	}

	if s.Players.First() == nil {
		state.Phase = PhaseEnded
		state.SpawningEnemies = false

		for id := range s.Tagged.Iter() {
			frame.Commands.Delete(id)
		}

		spawnMenu(frame.Commands, s.Assets, assetMenuRestart)
	}
}
