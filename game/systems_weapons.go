package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

type playerWeaponView struct {
	*Player
	*Ally
	*Transform
}

type supportWeaponView struct {
	*SupportUnit
	*Ally
	*Transform
	*ColorTint
}

type laserView struct {
	ecs.EntityId
	*Laser
	*Transform
	*Velocity
	*ColorTint
}

type uberLaserView struct {
	ecs.EntityId
	*UberLaser
	*Transform
	*Velocity
}

type grenadeView struct {
	ecs.EntityId
	*Grenade
	*Transform
	*Velocity
	*ColorTint
}

type targetView struct {
	ecs.EntityId
	*Enemy
	*Health
	*Transform
}

// PlayerWeaponSystem fires the player's primary laser at its fire rate,
// catching up with multiple shots when a frame spans several intervals.
type PlayerWeaponSystem struct {
	Assets  *ecs.Assets
	Players ecs.Query[playerWeaponView]
}

func (s *PlayerWeaponSystem) Execute(frame *ecs.Frame) {
	cube := s.Assets.Load(assetCube)

	s.Players.Par(func(_ ecs.EntityId, player playerWeaponView) {
		player.Ally.FireTimer += frame.DeltaTime

		interval := 1 / player.Player.FireRate
		for player.Ally.FireTimer >= interval {
			player.Ally.FireTimer -= interval
			spawnLaser(frame.Commands, cube, player.Transform.Position, player.Player.Damage, 100, ColorTint{R: 10})
		}
	})
}

// SupportWeaponSystem fires each support unit's weapon. Quality scales fire
// rate, damage, projectile speed and blast radius; low-quality lasers hit
// harder but fire slower.
type SupportWeaponSystem struct {
	Assets   *ecs.Assets
	State    ecs.Singleton[GameState]
	Supports ecs.Query[supportWeaponView]
}

func (s *SupportWeaponSystem) Execute(frame *ecs.Frame) {
	if s.State.Get().Phase != PhaseRunning {
		return
	}

	cube := s.Assets.Load(assetCube)

	s.Supports.Par(func(_ ecs.EntityId, unit supportWeaponView) {
		unit.Ally.FireTimer += frame.DeltaTime

		switch unit.SupportUnit.Weapon {
		case WeaponLaser:
			fireSupportLasers(frame, cube, unit)
		case WeaponGrenade:
			fireSupportGrenades(frame, cube, unit)
		}
	})
}

func fireSupportLasers(frame *ecs.Frame, cube ecs.AssetId, unit supportWeaponView) {
	quality := unit.SupportUnit.Quality
	interval := 1 / (2 + quality*4)

	for unit.Ally.FireTimer >= interval {
		unit.Ally.FireTimer -= interval

		damage := int64(50 + (1-quality)*150)
		speed := 75 + quality*175

		spawnLaser(frame.Commands, cube, unit.Transform.Position, damage, speed, *unit.ColorTint)
	}
}

func fireSupportGrenades(frame *ecs.Frame, cube ecs.AssetId, unit supportWeaponView) {
	const interval = 1 / 1.2

	for unit.Ally.FireTimer >= interval {
		unit.Ally.FireTimer -= interval

		quality := unit.SupportUnit.Quality

		frame.Commands.Spawn(
			*unit.ColorTint,
			Transform{Position: unit.Transform.Position, Scale: 0.5},
			Velocity{Value: Vec3{Y: 25, Z: 5 + quality*30}},
			Grenade{Damage: 300, DamageRadius: 5 + (1-quality)*5},
			Mesh{Asset: cube},
		)
	}
}

// LaserSystem advances lasers and resolves hits with a swept test over the
// frame's motion segment, so fast lasers cannot tunnel through an enemy.
// A laser damages every enemy overlapping its band this frame; the despawn
// is deferred, so side-by-side enemies die to one shot. Damage is atomic;
// whichever hit crosses the victim's health through zero gets the single
// kill credit: explosion, despawn, score.
type LaserSystem struct {
	Assets  *ecs.Assets
	State   ecs.Singleton[GameState]
	Lasers  ecs.Query[laserView]
	Enemies ecs.Query[targetView]
}

func (s *LaserSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	sphere := s.Assets.Load(assetSphere)

	s.Lasers.Par(func(id ecs.EntityId, laser laserView) {
		if laser.Transform.Position.Z >= LaserDistance {
			frame.Commands.Delete(id)
			return
		}

		next := laser.Transform.Position.Add(laser.Velocity.Value.Scale(frame.DeltaTime))

		for _, enemy := range s.Enemies.Iter() {
			enemyPos := enemy.Transform.Position

			if math.Abs(enemyPos.X-laser.Transform.Position.X) > LaserDamageRadius {
				continue
			}
			if enemyPos.Z < laser.Transform.Position.Z-LaserDamageRadius || enemyPos.Z > next.Z+LaserDamageRadius {
				continue
			}

			if enemy.Health.Damage(laser.Laser.Damage) {
				spawnExplosion(frame.Commands, sphere, enemyPos, explosionColor)
				frame.Commands.Delete(enemy.EntityId)
				state.AddScore(1)
			}

			spawnExplosion(frame.Commands, sphere, laser.Transform.Position, *laser.ColorTint)
			frame.Commands.Delete(id)
		}

		laser.Transform.Position = next
	})
}

// UberLaserSystem sweeps a full-width beam up the lane. It checks only the z
// band, keeps going after hits, and despawns past the stage length.
type UberLaserSystem struct {
	Assets  *ecs.Assets
	State   ecs.Singleton[GameState]
	Beams   ecs.Query[uberLaserView]
	Enemies ecs.Query[targetView]
}

func (s *UberLaserSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	sphere := s.Assets.Load(assetSphere)

	s.Beams.Par(func(id ecs.EntityId, beam uberLaserView) {
		if beam.Transform.Position.Z >= StageLength {
			frame.Commands.Delete(id)
			return
		}

		next := beam.Transform.Position.Add(beam.Velocity.Value.Scale(frame.DeltaTime))

		for _, enemy := range s.Enemies.Iter() {
			if enemy.Transform.Position.Z > next.Z+LaserDamageRadius {
				continue
			}
			if enemy.Health.Damage(beam.UberLaser.Damage) {
				spawnExplosion(frame.Commands, sphere, enemy.Transform.Position, explosionColor)
				frame.Commands.Delete(enemy.EntityId)
				state.AddScore(1)
			}
		}

		beam.Transform.Position = next
	})
}

// GrenadeSystem flies grenades on a ballistic arc and detonates them on the
// ground plane: area damage to every enemy in the blast radius plus a small
// cluster of explosions.
type GrenadeSystem struct {
	Assets   *ecs.Assets
	State    ecs.Singleton[GameState]
	Grenades ecs.Query[grenadeView]
	Enemies  ecs.Query[targetView]
}

func (s *GrenadeSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	sphere := s.Assets.Load(assetSphere)

	s.Grenades.Par(func(id ecs.EntityId, grenade grenadeView) {
		grenade.Transform.Position = grenade.Transform.Position.Add(grenade.Velocity.Value.Scale(frame.DeltaTime))
		grenade.Transform.Yaw += 2.3 * frame.DeltaTime
		grenade.Velocity.Value.Y -= GrenadeGravity * frame.DeltaTime

		if grenade.Transform.Position.Y >= 0 {
			return
		}
		grenade.Transform.Position.Y = 0

		for _, enemy := range s.Enemies.Iter() {
			if grenade.Transform.Position.Distance(enemy.Transform.Position) > grenade.Grenade.DamageRadius {
				continue
			}
			if enemy.Health.Damage(grenade.Grenade.Damage) {
				spawnExplosion(frame.Commands, sphere, enemy.Transform.Position, explosionColor)
				frame.Commands.Delete(enemy.EntityId)
				state.AddScore(1)
			}
		}

		spawnExplosion(frame.Commands, sphere, grenade.Transform.Position, *grenade.ColorTint)
		for i := 0; i < 2; i++ {
			offset := Vec3{
				X: rand.Float64()*6 - 3,
				Y: rand.Float64()*6 - 3,
				Z: rand.Float64()*6 - 3,
			}
			spawnExplosion(frame.Commands, sphere, grenade.Transform.Position.Add(offset), *grenade.ColorTint)
		}

		frame.Commands.Delete(id)
	})
}
