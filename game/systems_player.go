package game

import (
	"math"

	"github.com/plus3/starfall/ecs"
)

type playerView struct {
	*Player
	*Transform
}

type supportView struct {
	*SupportUnit
	*Transform
}

// pointerToWorld casts a ray from the camera through the normalized [0,1]
// screen position and intersects it with the ground plane. The field of view
// and viewport aspect determine how far off-axis the ray leans.
func pointerToWorld(input *ecs.Input, x, y float64) Vec3 {
	cam := input.Camera

	screenX := (x - 0.5) * 2
	screenY := -(y - 0.5) * 2

	halfTan := math.Tan(cam.Fov / 2)
	localX := math.Atan(halfTan * (input.AspectX / input.AspectY) * screenX)
	localY := math.Atan(halfTan * screenY)

	position := Vec3{X: cam.PosX, Y: cam.PosY, Z: cam.PosZ}
	forward := Vec3{X: cam.LookX, Y: cam.LookY, Z: cam.LookZ}.Sub(position).Normalized()
	right := forward.Cross(Vec3{Y: 1}).Normalized()
	up := right.Cross(forward)

	ray := right.Scale(localX).Add(up.Scale(localY)).Add(forward).Normalized()

	// line-plane intersection with y = 0
	t := -position.Y / ray.Y
	return position.Add(ray.Scale(t))
}

// PlayerMovementSystem moves the player to the pointer position, clamped to
// the playable area, and leans the model into the motion.
type PlayerMovementSystem struct {
	Input   ecs.Singleton[ecs.Input]
	Players ecs.Query[playerView]
}

func (s *PlayerMovementSystem) Execute(frame *ecs.Frame) {
	input := s.Input.Get()

	for player := range s.Players.Values() {
		oldX := player.Transform.Position.X

		if len(input.Touches) > 0 {
			touch := input.Touches[0]
			player.Transform.Position = pointerToWorld(input, touch.X, touch.Y)
		}
		if input.Mouse.Present {
			player.Transform.Position = pointerToWorld(input, input.Mouse.X, input.Mouse.Y)
		}

		player.Transform.Position.X = clamp(player.Transform.Position.X, -StageHalfWidth, StageHalfWidth)
		player.Transform.Position.Z = clamp(player.Transform.Position.Z, 0, PlayerMaxZ)

		// lean into the strafe, then decay back to level
		player.Transform.Tilt += (oldX - player.Transform.Position.X) * 0.1
		player.Transform.Tilt *= math.Pow(0.005, frame.DeltaTime)
	}
}

// SupportOrbitSystem keeps support units circling the player at a fixed
// radius, each at its own phase angle.
type SupportOrbitSystem struct {
	Players  ecs.Query[playerView]
	Supports ecs.Query[supportView]
}

func (s *SupportOrbitSystem) Execute(frame *ecs.Frame) {
	player := s.Players.First()
	if player == nil {
		return
	}

	playerPos := player.Transform.Position

	s.Supports.Par(func(_ ecs.EntityId, unit supportView) {
		unit.SupportUnit.Angle += frame.DeltaTime
		unit.Transform.Position.X = playerPos.X - math.Sin(unit.SupportUnit.Angle)*3
		unit.Transform.Position.Z = playerPos.Z - math.Cos(unit.SupportUnit.Angle)*3
	})
}
