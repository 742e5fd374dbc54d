package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

// colorFromHue converts a hue in [0, 360) to an RGB tint at full saturation.
func colorFromHue(hue float64) ColorTint {
	x := 1 - math.Abs(math.Mod(hue/60, 2)-1)
	switch {
	case hue < 60:
		return ColorTint{R: 1, G: x, B: 0}
	case hue < 120:
		return ColorTint{R: x, G: 1, B: 0}
	case hue < 180:
		return ColorTint{R: 0, G: 1, B: x}
	case hue < 240:
		return ColorTint{R: 0, G: x, B: 1}
	case hue < 300:
		return ColorTint{R: x, G: 0, B: 1}
	default:
		return ColorTint{R: 1, G: 0, B: x}
	}
}

func (c ColorTint) scale(s float64) ColorTint {
	return ColorTint{R: c.R * s, G: c.G * s, B: c.B * s}
}

func spawnPlayer(cmd *ecs.Commands, assets *ecs.Assets) {
	cmd.Spawn(
		Transform{Scale: 1},
		ColorTint{R: 0.5, G: 0.5, B: 0.5},
		Mesh{Asset: assets.Load(assetPlayer)},
		Player{FireRate: 2, Damage: 100},
		Ally{},
		NewHealth(PlayerMaxHealth),
		DespawnOnRestart{},
	)
}

func spawnEnemy(cmd *ecs.Commands, asset ecs.AssetId, desc *EnemyDescription) {
	speed := desc.SpeedMin + rand.Float64()*(desc.SpeedMax-desc.SpeedMin)

	cmd.Spawn(
		Transform{
			Position: Vec3{X: rand.Float64()*StageWidth - StageHalfWidth, Z: StageLength},
			Yaw:      math.Pi,
			Scale:    desc.Scale,
		},
		Enemy{
			Damage:   desc.Damage,
			Speed:    speed,
			TurnRate: desc.TurnRate,
			MaxAngle: desc.MaxAngle,
		},
		NewHealth(desc.Health),
		Mesh{Asset: asset},
		DespawnOnRestart{},
	)
}

func spawnAlly(cmd *ecs.Commands, assets *ecs.Assets, state *GameState, playerPosition Vec3, weapon WeaponType, quality float64) {
	cmd.Spawn(
		Transform{Position: playerPosition.Sub(Vec3{Z: 2}), Scale: 0.8},
		colorFromHue(quality*360).scale(3),
		Mesh{Asset: assets.Load(assetSupport)},
		SupportUnit{Weapon: weapon, Quality: quality},
		Ally{},
		NewHealth(10),
		DespawnOnRestart{},
	)

	if weapon == WeaponLaser {
		state.LaserAllyCount++
	}
}

func spawnLaser(cmd *ecs.Commands, mesh ecs.AssetId, origin Vec3, damage int64, speed float64, color ColorTint) {
	cmd.Spawn(
		Transform{Position: origin.Add(Vec3{Z: 1}), Scale: 0.2},
		Velocity{Value: Vec3{Z: speed}},
		Laser{Damage: damage},
		color,
		Mesh{Asset: mesh},
	)
}

func spawnUberLaser(cmd *ecs.Commands, assets *ecs.Assets) {
	cmd.Spawn(
		Transform{Position: Vec3{Z: -5}, Scale: 1},
		Velocity{Value: Vec3{Z: 50}},
		UberLaser{Damage: 1000},
		ColorTint{R: 2},
		Mesh{Asset: assets.Load(assetCube)},
	)
}

func spawnExplosion(cmd *ecs.Commands, mesh ecs.AssetId, position Vec3, color ColorTint) {
	for i := 0; i < ExplosionParticleCount; i++ {
		speed := rand.Float64() * 30
		direction := Vec3{
			X: rand.Float64() - 0.5,
			Y: rand.Float64() - 0.5,
			Z: rand.Float64() - 0.5,
		}.Normalized()

		cmd.Spawn(
			Transform{Position: position, Scale: ExplosionSize},
			Explosion{},
			Velocity{Value: direction.Scale(speed)},
			color,
			Mesh{Asset: mesh},
		)
	}
}

func spawnStar(cmd *ecs.Commands, mesh ecs.AssetId, z float64) {
	cmd.Spawn(
		Transform{
			Position: Vec3{
				X: rand.Float64()*100 - 50,
				Y: rand.Float64()*-10 - 5,
				Z: z,
			},
			Scale: rand.Float64() / 3,
		},
		Star{},
		ColorTint{R: 1, G: 1, B: 1},
		Mesh{Asset: mesh},
	)
}

func spawnMenu(cmd *ecs.Commands, assets *ecs.Assets, path string) {
	cmd.Spawn(
		Transform{Position: Vec3{Z: 10}, Scale: 2},
		Mesh{Asset: assets.Load(path)},
		DespawnOnRestart{},
	)
}
