package game_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

const frameDt = 1.0 / 60

// quietWaves is a table whose enemy spawn rate is effectively zero, so tests
// control the battlefield entity by entity.
func quietWaves() []game.WaveDescription {
	return []game.WaveDescription{{
		Duration: 1000,
		Enemies: []game.EnemyDescription{{
			SpeedMin:  0.001,
			SpeedMax:  0.001,
			Health:    1,
			SpawnRate: 1e-9,
			Scale:     1,
			MaxAngle:  1.05,
			Asset:     "enemy.glb",
		}},
	}}
}

func pressConfirm(world *game.World) {
	world.Input.Get().Confirm = ecs.KeyState{Pressed: true, PressedThisFrame: true}
}

func releaseConfirm(world *game.World) {
	world.Input.Get().Confirm = ecs.KeyState{}
}

func newRunningWorld(t *testing.T, waves []game.WaveDescription) *game.World {
	t.Helper()

	world := game.NewWorld(waves)
	pressConfirm(world)
	world.Scheduler.Once(frameDt)
	releaseConfirm(world)

	require.Equal(t, game.PhaseRunning, world.State.Get().Phase)
	return world
}

func countEntities[V any](storage *ecs.Storage) int {
	view := ecs.NewView[V](storage)
	count := 0
	for range view.Iter() {
		count++
	}
	return count
}

type enemyCount struct{ *game.Enemy }
type playerCount struct{ *game.Player }
type laserCount struct{ *game.Laser }
type upgradeCount struct{ *game.Upgrade }
type supportCount struct{ *game.SupportUnit }
type starCount struct{ *game.Star }
type digitCount struct{ *game.ScoreDigit }
type beamCount struct{ *game.UberLaser }
type taggedCount struct{ *game.DespawnOnRestart }

type playerHandle struct {
	*game.Player
	*game.Health
	*game.Transform
}

func playerOf(t *testing.T, world *game.World) playerHandle {
	t.Helper()

	view := ecs.NewView[playerHandle](world.Storage)
	for _, item := range view.Iter() {
		return item
	}
	t.Fatal("no player entity")
	return playerHandle{}
}

func spawnTestEnemy(world *game.World, position game.Vec3, health int64, damage int64, speed float64, turnRate float64) {
	world.Storage.Spawn(
		game.Transform{Position: position, Scale: 1},
		game.Enemy{Damage: damage, Speed: speed, TurnRate: turnRate, MaxAngle: 1.05},
		game.NewHealth(health),
		game.Mesh{},
		game.DespawnOnRestart{},
	)
}

func TestConfirmStartsRun(t *testing.T) {
	world := game.NewWorld(quietWaves())

	// nothing happens without a confirm edge
	world.Scheduler.Once(frameDt)
	assert.Equal(t, game.PhaseStart, world.State.Get().Phase)
	assert.Equal(t, 0, countEntities[playerCount](world.Storage))
	assert.Equal(t, 1, countEntities[taggedCount](world.Storage), "start menu visible")

	pressConfirm(world)
	world.Scheduler.Once(frameDt)
	releaseConfirm(world)

	state := world.State.Get()
	assert.Equal(t, game.PhaseRunning, state.Phase)
	assert.Equal(t, int64(0), state.Score.Load())
	assert.Equal(t, 1, countEntities[playerCount](world.Storage), "exactly one player")

	player := playerOf(t, world)
	assert.Equal(t, int64(game.PlayerMaxHealth), player.Health.Value.Load())
	assert.Equal(t, 2.0, player.Player.FireRate)
}

func TestTouchBeganAlsoStarts(t *testing.T) {
	world := game.NewWorld(quietWaves())

	input := world.Input.Get()
	input.Touches = []ecs.Pointer{{X: 0.5, Y: 0.5, Phase: ecs.TouchBegan}}
	world.Scheduler.Once(frameDt)
	input.Touches = nil

	assert.Equal(t, game.PhaseRunning, world.State.Get().Phase)
}

func TestWaveAdvancesWithQuietPeriod(t *testing.T) {
	world := newRunningWorld(t, game.DefaultWaves())
	state := world.State.Get()

	state.WaveTimer = state.Wave.Duration + 0.001
	world.Scheduler.Once(frameDt)

	assert.Equal(t, 1, state.WaveCount)
	assert.Equal(t, -game.SecondsBetweenWaves, state.WaveTimer)
	assert.False(t, state.SpawningEnemies)
}

func TestLaserKillAwardsSingleCredit(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{Z: 40}, 100, 0, 0, 0)

	// two lethal lasers reach the enemy in the same frame
	for i := 0; i < 2; i++ {
		world.Storage.Spawn(
			game.Transform{Position: game.Vec3{Z: 39}, Scale: 0.2},
			game.Velocity{Value: game.Vec3{Z: 100}},
			game.Laser{Damage: 100},
			game.ColorTint{},
			game.Mesh{},
		)
	}

	world.Scheduler.Once(frameDt)

	assert.Equal(t, int64(1), world.State.Get().Score.Load(), "one kill, one credit")
	assert.Equal(t, 0, countEntities[enemyCount](world.Storage))
	assert.Equal(t, 0, countEntities[laserCount](world.Storage), "lasers consumed on hit")
}

func TestLaserHitsEveryEnemyInItsBand(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	// two drones side by side, both inside one laser's swept band
	spawnTestEnemy(world, game.Vec3{X: -1, Z: 40}, 100, 0, 0, 0)
	spawnTestEnemy(world, game.Vec3{X: 1, Z: 40}, 100, 0, 0, 0)

	world.Storage.Spawn(
		game.Transform{Position: game.Vec3{Z: 39}, Scale: 0.2},
		game.Velocity{Value: game.Vec3{Z: 100}},
		game.Laser{Damage: 100},
		game.ColorTint{},
		game.Mesh{},
	)

	world.Scheduler.Once(frameDt)

	assert.Equal(t, int64(2), world.State.Get().Score.Load(), "one shot, two kills")
	assert.Equal(t, 0, countEntities[enemyCount](world.Storage))
	assert.Equal(t, 0, countEntities[laserCount](world.Storage), "laser consumed all the same")
}

func TestUberLaserSweepsWithoutStopping(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	for i := 0; i < 3; i++ {
		spawnTestEnemy(world, game.Vec3{X: float64(i * 4), Z: -5}, 500, 0, 0.001, 0)
	}

	world.Storage.Spawn(
		game.Transform{Position: game.Vec3{Z: -5}, Scale: 1},
		game.Velocity{Value: game.Vec3{Z: 50}},
		game.UberLaser{Damage: 1000},
		game.ColorTint{R: 2},
		game.Mesh{},
	)

	world.Scheduler.Once(frameDt)

	assert.Equal(t, int64(3), world.State.Get().Score.Load(), "beam kills everything in the band")
	assert.Equal(t, 0, countEntities[enemyCount](world.Storage))
	assert.Equal(t, 1, countEntities[beamCount](world.Storage), "beam survives its hits")
}

func TestGrenadeAreaDamage(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{X: 3, Z: 50}, 100, 0, 0.001, 0)

	world.Storage.Spawn(
		game.ColorTint{},
		game.Transform{Position: game.Vec3{Y: 0.01, Z: 50}, Scale: 0.5},
		game.Velocity{Value: game.Vec3{Y: -25}},
		game.Grenade{Damage: 300, DamageRadius: 8},
		game.Mesh{},
	)

	world.Scheduler.Once(frameDt)

	assert.Equal(t, int64(1), world.State.Get().Score.Load())
	assert.Equal(t, 0, countEntities[enemyCount](world.Storage))
}

func TestEnemyContactDamagesPlayerAndExplodes(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{}, 1000, 10, 0, 0)
	world.Scheduler.Once(frameDt)

	player := playerOf(t, world)
	assert.Equal(t, int64(90), player.Health.Value.Load())
	assert.Equal(t, 0, countEntities[enemyCount](world.Storage), "enemy dies on contact")
}

func TestPointerProjectsThroughCamera(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	input := world.Input.Get()
	input.AspectX, input.AspectY = 480, 800

	moveTo := func(x, y float64) game.Vec3 {
		input.Mouse = ecs.MouseState{Present: true, X: x, Y: y}
		world.Scheduler.Once(frameDt)
		return playerOf(t, world).Transform.Position
	}

	center := moveTo(0.5, 0.5)
	assert.InDelta(t, 0, center.X, 1e-9)
	assert.InDelta(t, 19, center.Z, 1e-9, "screen center lands on the camera's look-at point")

	left := moveTo(0.25, 0.85)
	right := moveTo(0.75, 0.85)
	assert.NotZero(t, left.X)
	assert.InDelta(t, -left.X, right.X, 1e-9, "projection is symmetric about the lane")
	assert.Less(t, left.Z, center.Z, "a lower pointer maps nearer the player")

	// a wider viewport pushes the same pointer farther off-axis
	input.AspectX, input.AspectY = 1600, 800
	wide := moveTo(0.75, 0.85)
	assert.Greater(t, math.Abs(wide.X), math.Abs(right.X))
}

func TestLaserAllyDeathReleasesSlot(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	world.Storage.Spawn(
		game.Transform{Position: game.Vec3{Z: 1}, Scale: 0.8},
		game.SupportUnit{Weapon: game.WeaponLaser, Quality: 0.5},
		game.Ally{},
		game.NewHealth(10),
		game.ColorTint{},
		game.Mesh{},
		game.DespawnOnRestart{},
	)
	state := world.State.Get()
	state.LaserAllyCount = 1

	world.Scheduler.Once(frameDt)
	require.Equal(t, 1, state.LaserAllyCount, "slot held while the ally lives")

	view := ecs.NewView[struct {
		*game.SupportUnit
		*game.Health
	}](world.Storage)
	for _, item := range view.Iter() {
		item.Health.Value.Store(0)
	}

	world.Scheduler.Once(frameDt)

	assert.Equal(t, 0, state.LaserAllyCount, "slot released at the despawn boundary")
	assert.Equal(t, 0, countEntities[supportCount](world.Storage))
}

func TestEnemyHomingSteersTowardPlayer(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{X: 10, Z: 20}, 1000, 0, 1, 1)

	for i := 0; i < 30; i++ {
		world.Scheduler.Once(frameDt)
	}

	view := ecs.NewView[struct {
		*game.Enemy
		*game.Transform
	}](world.Storage)

	found := false
	for _, item := range view.Iter() {
		found = true
		assert.Greater(t, item.Enemy.Angle, 0.0, "heading turned toward the player side")
		assert.Less(t, item.Transform.Position.X, 10.0, "drifting toward the player")
	}
	assert.True(t, found)
}

func TestEnemyDespawnsBehindCamera(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{X: 8, Z: -9.9}, 1000, 10, 100, 0)
	world.Scheduler.Once(frameDt)

	assert.Equal(t, 0, countEntities[enemyCount](world.Storage))
}

func TestPlayerDeathEndsRun(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	player := playerOf(t, world)
	player.Health.Value.Store(0)

	// frame 1: ally health system despawns the dead player at the boundary
	world.Scheduler.Once(frameDt)
	// frame 2: the state machine notices the player is gone
	world.Scheduler.Once(frameDt)

	state := world.State.Get()
	assert.Equal(t, game.PhaseEnded, state.Phase)
	assert.False(t, state.SpawningEnemies)
	assert.Equal(t, 0, countEntities[playerCount](world.Storage))
	assert.Equal(t, 1, countEntities[taggedCount](world.Storage), "only the game over menu remains")

	// the menu is spawned once, not every frame
	world.Scheduler.Once(frameDt)
	assert.Equal(t, 1, countEntities[taggedCount](world.Storage))
}

func TestRestartClearsPreviousRun(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	spawnTestEnemy(world, game.Vec3{Z: 60}, 1000, 0, 0.001, 0)
	world.State.Get().AddScore(5)

	player := playerOf(t, world)
	player.Health.Value.Store(0)
	world.Scheduler.Once(frameDt)
	world.Scheduler.Once(frameDt)
	require.Equal(t, game.PhaseEnded, world.State.Get().Phase)
	require.Equal(t, 0, countEntities[enemyCount](world.Storage), "enemies cleared at game over")

	pressConfirm(world)
	world.Scheduler.Once(frameDt)
	releaseConfirm(world)

	state := world.State.Get()
	assert.Equal(t, game.PhaseRunning, state.Phase)
	assert.Equal(t, int64(0), state.Score.Load())
	assert.Equal(t, 0, state.WaveCount)
	assert.Equal(t, 1, countEntities[playerCount](world.Storage))
	assert.Equal(t, 1, countEntities[taggedCount](world.Storage), "fresh player is the only tagged entity")
}

func TestEnemySpawnRateConvergence(t *testing.T) {
	waves := quietWaves()
	waves[0].Enemies[0].SpawnRate = 50

	world := newRunningWorld(t, waves)

	const frames = 600 // 10 simulated seconds
	for i := 0; i < frames; i++ {
		world.Scheduler.Once(frameDt)
	}

	count := countEntities[enemyCount](world.Storage)
	assert.InDelta(t, 500, count, 80, "expected rate*time spawns within statistical noise")
}

func TestLaserAllyCapGatesUpgradeSpawns(t *testing.T) {
	waves := quietWaves()
	waves[0].Upgrades = []game.UpgradeDescription{{
		Type:      game.UpgradeLaser,
		SpeedMin:  15,
		SpeedMax:  15,
		SpawnRate: 1000,
	}}

	world := newRunningWorld(t, waves)
	state := world.State.Get()

	state.LaserAllyCount = game.MaxLaserAllyCount
	for i := 0; i < 5; i++ {
		world.Scheduler.Once(frameDt)
	}
	assert.Equal(t, 0, countEntities[upgradeCount](world.Storage), "no laser upgrades at the ally cap")

	state.LaserAllyCount = game.MaxLaserAllyCount - 1
	for i := 0; i < 3; i++ {
		world.Scheduler.Once(frameDt)
	}
	assert.Equal(t, 3, countEntities[upgradeCount](world.Storage), "one upgrade per frame below the cap")
}

func TestHealthPickupHealsWithCap(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	player := playerOf(t, world)
	player.Health.Value.Store(80)

	world.Storage.Spawn(
		game.Transform{Position: game.Vec3{}, Scale: 2},
		game.Upgrade{Type: game.UpgradeHealth},
		game.ColorTint{},
		game.Mesh{},
		game.DespawnOnRestart{},
	)

	world.Scheduler.Once(frameDt)

	assert.Equal(t, int64(game.PlayerMaxHealth), player.Health.Value.Load(), "+50 capped at full")
	assert.Equal(t, 0, countEntities[upgradeCount](world.Storage), "pickup consumed")
}

func TestLaserUpgradePickupSpawnsAlly(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	world.Storage.Spawn(
		game.Transform{Position: game.Vec3{}, Scale: 2},
		game.Upgrade{Type: game.UpgradeLaser, Quality: 0.5},
		game.ColorTint{},
		game.Mesh{},
		game.DespawnOnRestart{},
	)

	world.Scheduler.Once(frameDt)

	assert.Equal(t, 1, world.State.Get().LaserAllyCount)
	assert.Equal(t, 1, countEntities[supportCount](world.Storage))
}

func TestStarfieldSeededAndReplenished(t *testing.T) {
	world := game.NewWorld(quietWaves())
	assert.Equal(t, 300, countEntities[starCount](world.Storage))

	for i := 0; i < 10; i++ {
		world.Scheduler.Once(0.1)
	}
	assert.Equal(t, 310, countEntities[starCount](world.Storage), "one star per spawn interval")
}

func TestScoreDigitsRebuiltPerFrame(t *testing.T) {
	world := newRunningWorld(t, quietWaves())

	world.State.Get().Score.Store(123)
	world.Scheduler.Once(frameDt)
	assert.Equal(t, 3, countEntities[digitCount](world.Storage))

	world.State.Get().Score.Store(7)
	world.Scheduler.Once(frameDt)
	assert.Equal(t, 1, countEntities[digitCount](world.Storage))
}

func TestHealthBarTracksPlayer(t *testing.T) {
	world := game.NewWorld(quietWaves())
	world.Scheduler.Once(frameDt)

	greens := func() int {
		count := 0
		view := ecs.NewView[struct {
			*game.HealthBarSegment
			*game.ColorTint
		}](world.Storage)
		for _, item := range view.Iter() {
			if item.ColorTint.G > 0 {
				count++
			}
		}
		return count
	}

	assert.Equal(t, 100, greens(), "start screen shows a full bar")

	pressConfirm(world)
	world.Scheduler.Once(frameDt)
	releaseConfirm(world)
	world.Scheduler.Once(frameDt)

	player := playerOf(t, world)
	player.Health.Value.Store(40)
	world.Scheduler.Once(frameDt)
	assert.Equal(t, 40, greens())

	player.Health.Value.Store(0)
	world.Scheduler.Once(frameDt)
	world.Scheduler.Once(frameDt)
	assert.Equal(t, 0, greens(), "game over shows an empty bar")
}
