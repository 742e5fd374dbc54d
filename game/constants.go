package game

// Stage and combat tuning. Distances are world units, durations seconds.
const (
	StageWidth     = 18.0
	StageHalfWidth = StageWidth / 2
	StageLength    = 120.0

	// The player may roam the near end of the lane.
	PlayerMaxZ = 25.0

	PlayerMaxHealth = 100

	EnemyDamageRadius = 0.9
	UpgradeRadius     = 2.0
	LaserDamageRadius = 1.5

	// Lasers despawn past this z; uber lasers sweep the whole lane.
	LaserDistance = 70.0

	ExplosionSize          = 0.5
	ExplosionDuration      = 0.5
	ExplosionParticleCount = 12

	SecondsBetweenWaves = 5.0

	// Each laser ally scans every enemy per frame, so their number is capped.
	MaxLaserAllyCount = 20

	GrenadeGravity = 40.0

	StarDriftSpeed    = 10.0
	StarSpawnInterval = 0.1

	scoreAnchorX      = 8.0
	scoreDigitSpacing = 0.8
	scoreRowZ         = 115.0

	// Stage camera: above the near end, looking down the lane.
	cameraFov = 1.5
)

var (
	cameraPosition = Vec3{Y: 30}
	cameraTarget   = Vec3{Z: 19}
)

// Asset paths, resolved to opaque handles through ecs.Assets. The host maps
// them to whatever representation it draws with.
const (
	assetPlayer           = "player.glb"
	assetSupport          = "support.glb"
	assetCube             = "cube.glb"
	assetSphere           = "sphere.glb"
	assetHealthUpgrade    = "powerup_health.glb"
	assetUberLaserUpgrade = "powerup_uber_laser.glb"
	assetMenuStart        = "menu_start.glb"
	assetMenuRestart      = "menu_restart.glb"
)

var digitAssets = [10]string{
	"Number_0.glb", "Number_1.glb", "Number_2.glb", "Number_3.glb", "Number_4.glb",
	"Number_5.glb", "Number_6.glb", "Number_7.glb", "Number_8.glb", "Number_9.glb",
}

var explosionColor = ColorTint{R: 2, G: 0.1, B: 0}
