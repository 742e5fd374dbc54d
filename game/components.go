package game

import "github.com/plus3/starfall/ecs"

type WeaponType int

const (
	WeaponLaser WeaponType = iota
	WeaponGrenade
)

type UpgradeType int

const (
	UpgradeHealth UpgradeType = iota
	UpgradeLaser
	UpgradeGrenade
	UpgradeUberLaser

	upgradeTypeCount
)

// Transform places an entity on the stage. Yaw is the heading around the Y
// axis; Tilt is the roll the player model leans with while strafing.
type Transform struct {
	Position Vec3
	Yaw      float64
	Tilt     float64
	Scale    float64
}

type Velocity struct {
	Value Vec3
}

// Health is shared mutable state: projectiles and enemies damage it from
// parallel iteration, so all mutation is atomic.
type Health struct {
	Value AtomicInt
}

func NewHealth(n int64) Health {
	return Health{Value: AtomicInt{v: n}}
}

// Damage applies d atomically and reports whether this call took the value
// from positive to zero or below. Under concurrent hits the value may go
// arbitrarily negative, but exactly one caller observes the crossing, so
// kill credit is awarded once.
func (h *Health) Damage(d int64) bool {
	prev := h.Value.Add(-d)
	return prev > 0 && prev-d <= 0
}

type Player struct {
	FireRate float64
	Damage   int64
}

// SupportUnit orbits the player and fires its own weapon. Quality in [0,1]
// scales fire rate, damage, projectile speed and blast radius.
type SupportUnit struct {
	Angle   float64
	Weapon  WeaponType
	Quality float64
}

// Ally marks an entity enemies collide with and home toward. The player and
// support units are allies; FireTimer accumulates toward the next shot.
type Ally struct {
	FireTimer float64
}

type Enemy struct {
	Damage   int64
	Speed    float64
	TurnRate float64
	Angle    float64
	MaxAngle float64
}

type Upgrade struct {
	Type    UpgradeType
	Speed   float64
	Quality float64
}

type Laser struct {
	Damage int64
}

type UberLaser struct {
	Damage int64
}

type Grenade struct {
	Damage       int64
	DamageRadius float64
}

type Explosion struct {
	Timer float64
}

type ColorTint struct {
	R, G, B float64
}

type Mesh struct {
	Asset ecs.AssetId
}

type ScoreDigit struct{}

type HealthBarSegment struct {
	Index int
}

type Star struct{}

// DespawnOnRestart tags entities cleared when a run starts or ends.
type DespawnOnRestart struct{}

// StarSpawnTimer is the singleton accumulator for starfield replenishment.
type StarSpawnTimer struct {
	Value float64
}

// RegisterComponents registers every component type with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[SupportUnit](registry)
	ecs.RegisterComponent[Ally](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Upgrade](registry)
	ecs.RegisterComponent[Laser](registry)
	ecs.RegisterComponent[UberLaser](registry)
	ecs.RegisterComponent[Grenade](registry)
	ecs.RegisterComponent[Explosion](registry)
	ecs.RegisterComponent[ColorTint](registry)
	ecs.RegisterComponent[Mesh](registry)
	ecs.RegisterComponent[ScoreDigit](registry)
	ecs.RegisterComponent[HealthBarSegment](registry)
	ecs.RegisterComponent[Star](registry)
	ecs.RegisterComponent[DespawnOnRestart](registry)
}
