package game

import "github.com/plus3/starfall/ecs"

type explosionView struct {
	ecs.EntityId
	*Explosion
	*Transform
	*Velocity
}

type starView struct {
	ecs.EntityId
	*Star
	*Transform
}

// ExplosionSystem ages particles, drifting and shrinking them until they
// expire.
type ExplosionSystem struct {
	Explosions ecs.Query[explosionView]
}

func (s *ExplosionSystem) Execute(frame *ecs.Frame) {
	s.Explosions.Par(func(id ecs.EntityId, particle explosionView) {
		particle.Explosion.Timer += frame.DeltaTime

		if particle.Explosion.Timer >= ExplosionDuration {
			frame.Commands.Delete(id)
		}

		particle.Transform.Position = particle.Transform.Position.Add(particle.Velocity.Value.Scale(frame.DeltaTime))
		particle.Transform.Scale = (1 - particle.Explosion.Timer/ExplosionDuration) * ExplosionSize
	})
}

// StarSpawnSystem replenishes the scrolling starfield from the far end.
type StarSpawnSystem struct {
	Assets *ecs.Assets
	Timer  ecs.Singleton[StarSpawnTimer]
}

func (s *StarSpawnSystem) Execute(frame *ecs.Frame) {
	sphere := s.Assets.Load(assetSphere)

	timer := s.Timer.Get()
	timer.Value += frame.DeltaTime

	for timer.Value >= StarSpawnInterval {
		timer.Value -= StarSpawnInterval
		spawnStar(frame.Commands, sphere, 200)
	}
}

// StarDriftSystem scrolls stars toward the camera and recycles them once
// they pass it.
type StarDriftSystem struct {
	Stars ecs.Query[starView]
}

func (s *StarDriftSystem) Execute(frame *ecs.Frame) {
	s.Stars.Par(func(id ecs.EntityId, star starView) {
		star.Transform.Position.Z -= StarDriftSpeed * frame.DeltaTime

		if star.Transform.Position.Z < -10 {
			frame.Commands.Delete(id)
		}
	})
}
