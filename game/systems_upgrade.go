package game

import (
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

type playerHealthView struct {
	*Player
	*Health
}

type pickupPlayerView struct {
	*Player
	*Transform
	*Health
}

type upgradeView struct {
	*Upgrade
	*Transform
	*ColorTint
}

// UpgradeSpawnSystem drips upgrades in on per-type timers. The timer resets
// to zero on spawn rather than subtracting the interval, so at most one
// upgrade of a type appears per frame. Laser upgrades stop spawning at the
// ally cap, health upgrades while the player is already full.
type UpgradeSpawnSystem struct {
	Assets  *ecs.Assets
	State   ecs.Singleton[GameState]
	Players ecs.Query[playerHealthView]
}

func (s *UpgradeSpawnSystem) Execute(frame *ecs.Frame) {
	state := s.State.Get()
	if state.Phase != PhaseRunning {
		return
	}

	for i := range state.Wave.Upgrades {
		desc := &state.Wave.Upgrades[i]

		if desc.Type == UpgradeLaser && state.LaserAllyCount >= MaxLaserAllyCount {
			continue
		}
		if desc.Type == UpgradeHealth {
			if player := s.Players.First(); player != nil && player.Health.Value.Load() == PlayerMaxHealth {
				continue
			}
		}

		timer := &state.UpgradeTimers[desc.Type]
		*timer += frame.DeltaTime

		if *timer < 1/desc.SpawnRate {
			continue
		}
		*timer = 0

		upgrade := Upgrade{
			Type:  desc.Type,
			Speed: desc.SpeedMin + rand.Float64()*(desc.SpeedMax-desc.SpeedMin),
		}

		asset := assetCube
		switch desc.Type {
		case UpgradeHealth:
			asset = assetHealthUpgrade
		case UpgradeUberLaser:
			asset = assetUberLaserUpgrade
		}

		var color ColorTint
		if desc.Type == UpgradeLaser || desc.Type == UpgradeGrenade {
			upgrade.Quality = rand.Float64()
			color = colorFromHue(upgrade.Quality * 360).scale(3)
		}

		frame.Commands.Spawn(
			Transform{
				Position: Vec3{X: rand.Float64()*(StageWidth+1) - StageHalfWidth, Z: StageLength},
				Scale:    2,
			},
			upgrade,
			color,
			Mesh{Asset: s.Assets.Load(asset)},
			DespawnOnRestart{},
		)
	}
}

// UpgradePickupSystem scrolls upgrades toward the player and applies them on
// contact. Runs sequentially: pickups mutate the laser ally count and player
// health, and each upgrade must apply at most once.
type UpgradePickupSystem struct {
	Assets   *ecs.Assets
	State    ecs.Singleton[GameState]
	Upgrades ecs.Query[upgradeView]
	Players  ecs.Query[pickupPlayerView]
}

func (s *UpgradePickupSystem) Execute(frame *ecs.Frame) {
	player := s.Players.First()
	if player == nil {
		return
	}

	state := s.State.Get()
	sphere := s.Assets.Load(assetSphere)

	for id, upgrade := range s.Upgrades.Iter() {
		upgrade.Transform.Position.Z -= upgrade.Upgrade.Speed * frame.DeltaTime
		upgrade.Transform.Yaw += frame.DeltaTime

		if upgrade.Transform.Position.Distance(player.Transform.Position) <= UpgradeRadius {
			switch upgrade.Upgrade.Type {
			case UpgradeHealth:
				healed := min(player.Health.Value.Load()+50, PlayerMaxHealth)
				player.Health.Value.Store(healed)
			case UpgradeUberLaser:
				spawnUberLaser(frame.Commands, s.Assets)
			case UpgradeLaser:
				spawnAlly(frame.Commands, s.Assets, state, player.Transform.Position, WeaponLaser, upgrade.Upgrade.Quality)
			case UpgradeGrenade:
				spawnAlly(frame.Commands, s.Assets, state, player.Transform.Position, WeaponGrenade, upgrade.Upgrade.Quality)
			}

			spawnExplosion(frame.Commands, sphere, upgrade.Transform.Position, *upgrade.ColorTint)
			frame.Commands.Delete(id)
			continue
		}

		if upgrade.Transform.Position.Z < -15 {
			frame.Commands.Delete(id)
		}
	}
}
