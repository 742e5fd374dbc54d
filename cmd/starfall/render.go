package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

// The visible z range, from just behind the camera to past the spawn line.
const (
	worldMinZ = -10.0
	worldMaxZ = 130.0
)

type renderView struct {
	*game.Transform
	*game.Mesh
	Color *game.ColorTint `ecs:"optional"`
}

// renderer draws the simulation top-down: x spans the screen width, z runs
// from the bottom of the screen (player) to the top (spawn line). It only
// reads from the storage; the simulation never sees it.
type renderer struct {
	world *game.World
	view  *ecs.View[renderView]
}

func newRenderer(world *game.World) *renderer {
	return &renderer{
		world: world,
		view:  ecs.NewView[renderView](world.Storage),
	}
}

func worldToScreen(p game.Vec3) (float32, float32) {
	x := (p.X + game.StageHalfWidth) / game.StageWidth * screenWidth
	y := (1 - (p.Z-worldMinZ)/(worldMaxZ-worldMinZ)) * screenHeight
	return float32(x), float32(y)
}

func (r *renderer) draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 16, A: 255})

	for _, item := range r.view.Iter() {
		r.drawEntity(screen, item)
	}

	r.drawWaveLabel(screen)
}

func (r *renderer) drawEntity(screen *ebiten.Image, item renderView) {
	path := r.world.Assets.Path(item.Mesh.Asset)
	x, y := worldToScreen(item.Transform.Position)

	tint := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if item.Color != nil {
		tint = rgba(*item.Color)
	}

	size := float32(item.Transform.Scale * 10)
	if size < 1 {
		size = 1
	}

	switch {
	case path == "player.glb":
		vector.DrawFilledCircle(screen, x, y, 8, tint, true)
	case path == "support.glb":
		vector.DrawFilledCircle(screen, x, y, 5, tint, true)
	case path == "enemy.glb":
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, color.RGBA{R: 220, G: 60, B: 60, A: 255}, true)
	case path == "sphere.glb":
		// stars and explosion particles
		vector.DrawFilledCircle(screen, x, y, size/2, tint, true)
	case path == "powerup_health.glb":
		vector.DrawFilledCircle(screen, x, y, 7, color.RGBA{R: 60, G: 220, B: 60, A: 255}, true)
	case path == "powerup_uber_laser.glb":
		vector.DrawFilledCircle(screen, x, y, 7, color.RGBA{R: 220, G: 220, B: 60, A: 255}, true)
	case strings.HasPrefix(path, "Number_"):
		digit := strings.TrimSuffix(strings.TrimPrefix(path, "Number_"), ".glb")
		text.Draw(screen, digit, basicfont.Face7x13, int(x), int(y), color.White)
	case path == "menu_start.glb":
		r.drawCentered(screen, "PRESS SPACE TO START")
	case path == "menu_restart.glb":
		r.drawCentered(screen, "GAME OVER - PRESS SPACE TO RESTART")
	default:
		// cube.glb: lasers, grenades, uber lasers, health bar segments
		vector.DrawFilledRect(screen, x-size/2, y-2, size, 4, tint, true)
	}
}

func (r *renderer) drawCentered(screen *ebiten.Image, label string) {
	x := screenWidth/2 - len(label)*7/2
	text.Draw(screen, label, basicfont.Face7x13, x, screenHeight/2, color.White)
}

func (r *renderer) drawWaveLabel(screen *ebiten.Image) {
	state := r.world.State.Get()
	if state.Phase != game.PhaseRunning {
		return
	}

	label := fmt.Sprintf("WAVE %d", state.WaveCount+1)
	text.Draw(screen, label, basicfont.Face7x13, 8, 16, color.White)
}

func rgba(c game.ColorTint) color.RGBA {
	return color.RGBA{R: clampByte(c.R), G: clampByte(c.G), B: clampByte(c.B), A: 255}
}

func clampByte(v float64) uint8 {
	v *= 255
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}
