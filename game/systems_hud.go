package game

import (
	"math"

	"github.com/plus3/starfall/ecs"
)

type playerLifeView struct {
	*Player
	*Health
}

type supportLifeView struct {
	*SupportUnit
	*Health
}

type healthBarView struct {
	*HealthBarSegment
	*ColorTint
}

type digitView struct {
	*ScoreDigit
}

// AllyHealthSystem despawns allies whose health has run out. The laser ally
// slot is released in a deferred command so the count drops at the same flush
// that removes the entity. Sequential: the laser ally count is plain state.
type AllyHealthSystem struct {
	State    ecs.Singleton[GameState]
	Players  ecs.Query[playerLifeView]
	Supports ecs.Query[supportLifeView]
}

func (s *AllyHealthSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()

	for id, player := range s.Players.Iter() {
		if player.Health.Value.Load() <= 0 {
			frame.Commands.Delete(id)
		}
	}

	for id, unit := range s.Supports.Iter() {
		if unit.Health.Value.Load() <= 0 {
			frame.Commands.Delete(id)

			if unit.SupportUnit.Weapon == WeaponLaser {
				frame.Commands.Defer(func() {
					state.LaserAllyCount--
				})
			}
		}
	}
}

// HealthBarSystem paints the 100-segment strip: green below the player's
// current health, red above. The start screen shows a full bar, the game
// over screen an empty one.
type HealthBarSystem struct {
	State    ecs.Singleton[GameState]
	Players  ecs.Query[playerHealthView]
	Segments ecs.Query[healthBarView]
}

func (s *HealthBarSystem) Execute(frame *ecs.Frame) {
	var health int64
	if player := s.Players.First(); player != nil {
		health = player.Health.Value.Load()
	} else if s.State.Get().Phase == PhaseStart {
		health = PlayerMaxHealth
	}

	s.Segments.Par(func(_ ecs.EntityId, segment healthBarView) {
		if int64(segment.HealthBarSegment.Index) < health {
			*segment.ColorTint = ColorTint{G: 1}
		} else {
			*segment.ColorTint = ColorTint{R: 1}
		}
	})
}

// ScoreSystem rebuilds the score readout from scratch every frame: despawn
// every digit entity, respawn one per decimal digit, least significant at
// the anchor. Digit counts are small, so the brute-force redraw is cheap.
type ScoreSystem struct {
	Assets *ecs.Assets
	State  ecs.Singleton[GameState]
	Digits ecs.Query[digitView]
}

func (s *ScoreSystem) Execute(frame *ecs.Frame) {
	for id := range s.Digits.Iter() {
		frame.Commands.Delete(id)
	}

	score := s.State.Get().Score.Load()

	digits := 1
	if score > 0 {
		digits = int(math.Log10(float64(score))) + 1
	}

	for i := 0; i < digits; i++ {
		value := score % 10
		score /= 10

		frame.Commands.Spawn(
			ScoreDigit{},
			Transform{
				Position: Vec3{X: scoreAnchorX - float64(i)*scoreDigitSpacing, Z: scoreRowZ},
				Scale:    1,
			},
			Mesh{Asset: s.Assets.Load(digitAssets[value])},
		)
	}
}
