package game

import (
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

// World bundles the storage, scheduler and asset table for one game.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Assets    *ecs.Assets
	Input     *ecs.Singleton[ecs.Input]
	State     *ecs.Singleton[GameState]
}

// NewWorld builds a fully wired game world running the given wave table.
func NewWorld(waves []WaveDescription) *World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	assets := ecs.NewAssets()

	Setup(storage, assets, waves)

	scheduler := ecs.NewScheduler(storage)
	RegisterSystems(scheduler, assets)

	return &World{
		Registry:  registry,
		Storage:   storage,
		Scheduler: scheduler,
		Assets:    assets,
		Input:     ecs.NewSingleton[ecs.Input](storage),
		State:     ecs.NewSingleton[GameState](storage),
	}
}

// Setup registers singletons and seeds the persistent entities: the starfield
// backdrop, the 100-segment health bar, and the start menu.
func Setup(storage *ecs.Storage, assets *ecs.Assets, waves []WaveDescription) {
	storage.AddSingleton(NewGameState(waves))
	storage.AddSingleton(ecs.Input{
		Camera: ecs.CameraState{
			PosX: cameraPosition.X, PosY: cameraPosition.Y, PosZ: cameraPosition.Z,
			LookX: cameraTarget.X, LookY: cameraTarget.Y, LookZ: cameraTarget.Z,
			Fov: cameraFov,
		},
		// square viewport until the host reports its own
		AspectX: 1,
		AspectY: 1,
	})
	storage.AddSingleton(StarSpawnTimer{})

	sphere := assets.Load(assetSphere)
	cube := assets.Load(assetCube)

	for i := 0; i < 300; i++ {
		storage.Spawn(
			Transform{
				Position: Vec3{
					X: rand.Float64()*100 - 50,
					Y: rand.Float64()*-10 - 5,
					Z: rand.Float64() * 200,
				},
				Scale: rand.Float64() / 3,
			},
			Star{},
			ColorTint{R: 1, G: 1, B: 1},
			Mesh{Asset: sphere},
		)
	}

	segmentWidth := (StageWidth - 2) / 100.0
	for i := 0; i < 100; i++ {
		offset := float64(i) - 49.5
		storage.Spawn(
			Transform{Position: Vec3{X: -offset * segmentWidth, Z: -4}, Scale: segmentWidth},
			HealthBarSegment{Index: i},
			ColorTint{G: 1},
			Mesh{Asset: cube},
		)
	}

	storage.Spawn(
		Transform{Position: Vec3{Z: 10}, Scale: 2},
		Mesh{Asset: assets.Load(assetMenuStart)},
		DespawnOnRestart{},
	)
}

// RegisterSystems registers the frame pipeline in update order.
func RegisterSystems(scheduler *ecs.Scheduler, assets *ecs.Assets) {
	scheduler.Register(&PlayerMovementSystem{})
	scheduler.Register(&SupportOrbitSystem{})
	scheduler.Register(&GameStateSystem{Assets: assets})
	scheduler.Register(&EnemySpawnSystem{Assets: assets})
	scheduler.Register(&EnemyUpdateSystem{Assets: assets})
	scheduler.Register(&PlayerWeaponSystem{Assets: assets})
	scheduler.Register(&SupportWeaponSystem{Assets: assets})
	scheduler.Register(&LaserSystem{Assets: assets})
	scheduler.Register(&UberLaserSystem{Assets: assets})
	scheduler.Register(&GrenadeSystem{Assets: assets})
	scheduler.Register(&UpgradeSpawnSystem{Assets: assets})
	scheduler.Register(&UpgradePickupSystem{Assets: assets})
	scheduler.Register(&ExplosionSystem{})
	scheduler.Register(&StarSpawnSystem{Assets: assets})
	scheduler.Register(&StarDriftSystem{})
	scheduler.Register(&AllyHealthSystem{})
	scheduler.Register(&HealthBarSystem{})
	scheduler.Register(&ScoreSystem{Assets: assets})
}
