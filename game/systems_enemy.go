package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

type enemyView struct {
	ecs.EntityId
	*Enemy
	*Transform
}

type allyView struct {
	*Ally
	*Transform
	*Health
}

// EnemySpawnSystem turns each wave entry's spawn rate into an integer spawn
// count per frame: floor(rate*dt) plus a Bernoulli draw on the fractional
// remainder, which keeps the expected rate exact at any frame time.
type EnemySpawnSystem struct {
	Assets *ecs.Assets
	State  ecs.Singleton[GameState]
}

func (s *EnemySpawnSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	if !state.SpawningEnemies {
		return
	}

	for i := range state.Wave.Enemies {
		desc := &state.Wave.Enemies[i]
		asset := s.Assets.Load(desc.Asset)

		expected := desc.SpawnRate * frame.DeltaTime
		count := int(expected)
		if rand.Float64() < expected-math.Floor(expected) {
			count++
		}

		for n := 0; n < count; n++ {
			spawnEnemy(frame.Commands, asset, desc)
		}
	}
}

// EnemyUpdateSystem integrates enemy homing and movement, despawns enemies
// that scroll off the stage, and resolves enemy-vs-ally contact damage. The
// first overlapping ally in snapshot order takes the hit; the enemy explodes
// and despawns after a single hit.
type EnemyUpdateSystem struct {
	Assets  *ecs.Assets
	Enemies ecs.Query[enemyView]
	Allies  ecs.Query[allyView]
}

func (s *EnemyUpdateSystem) Execute(frame *ecs.Frame) {
	homing := s.Allies.First()
	if homing == nil {
		return
	}

	homingPos := homing.Transform.Position
	sphere := s.Assets.Load(assetSphere)

	s.Enemies.Par(func(id ecs.EntityId, item enemyView) {
		enemy := item.Enemy
		transform := item.Transform

		// steer toward the tracked ally only inside the forward z band, so
		// distant enemies fly straight instead of twitching at the horizon
		if enemy.TurnRate > 0 && transform.Position.Z > homingPos.Z && transform.Position.Z < homingPos.Z+30 {
			opposite := transform.Position.X - homingPos.X
			adjacent := transform.Position.Z - homingPos.Z
			target := math.Atan(opposite / adjacent)

			if target > enemy.Angle {
				enemy.Angle = math.Min(enemy.Angle+enemy.TurnRate*frame.DeltaTime, target)
			} else {
				enemy.Angle = math.Max(enemy.Angle-enemy.TurnRate*frame.DeltaTime, target)
			}
			enemy.Angle = clamp(enemy.Angle, -enemy.MaxAngle, enemy.MaxAngle)
		}

		transform.Yaw = enemy.Angle + math.Pi

		velocity := Vec3{
			X: -math.Sin(enemy.Angle) * enemy.Speed,
			Z: -math.Cos(enemy.Angle) * enemy.Speed,
		}
		transform.Position = transform.Position.Add(velocity.Scale(frame.DeltaTime))

		if transform.Position.Z < -10 {
			frame.Commands.Delete(id)
			return
		}

		damageRadius := EnemyDamageRadius * transform.Scale

		// skip the ally scan entirely while the enemy is far up the lane
		if homingPos.Z+3 < transform.Position.Z-damageRadius {
			return
		}

		for _, ally := range s.Allies.Iter() {
			allyPos := ally.Transform.Position
			if transform.Position.Z-damageRadius <= allyPos.Z && transform.Position.Z+damageRadius >= allyPos.Z &&
				transform.Position.X-damageRadius <= allyPos.X && transform.Position.X+damageRadius >= allyPos.X {
				ally.Health.Damage(enemy.Damage)

				spawnExplosion(frame.Commands, sphere, transform.Position, explosionColor)
				frame.Commands.Delete(id)

				// first overlapping ally wins; one hit per enemy
				break
			}
		}
	})
}
