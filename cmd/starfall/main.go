package main

import (
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

const (
	screenWidth  = 480
	screenHeight = 800
)

// App is the ebiten shell around the simulation: it captures input into the
// snapshot singleton, steps the scheduler, and hands drawing to the renderer.
type App struct {
	world    *game.World
	renderer *renderer
	touchIDs []ebiten.TouchID
	justIDs  []ebiten.TouchID
}

func newApp() *App {
	world := game.NewWorld(game.DefaultWaves())
	return &App{
		world:    world,
		renderer: newRenderer(world),
	}
}

func (a *App) Update() error {
	a.captureInput()
	a.world.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) captureInput() {
	input := a.world.Input.Get()

	input.Confirm = ecs.KeyState{
		Pressed:          ebiten.IsKeyPressed(ebiten.KeySpace),
		PressedThisFrame: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}

	mouseX, mouseY := ebiten.CursorPosition()
	input.Mouse = ecs.MouseState{
		Present: true,
		X:       float64(mouseX) / screenWidth,
		Y:       float64(mouseY) / screenHeight,
	}

	a.justIDs = inpututil.AppendJustPressedTouchIDs(a.justIDs[:0])
	a.touchIDs = ebiten.AppendTouchIDs(a.touchIDs[:0])

	input.Touches = input.Touches[:0]
	for _, id := range a.touchIDs {
		x, y := ebiten.TouchPosition(id)

		phase := ecs.TouchMoved
		if slices.Contains(a.justIDs, id) {
			phase = ecs.TouchBegan
		}

		input.Touches = append(input.Touches, ecs.Pointer{
			X:     float64(x) / screenWidth,
			Y:     float64(y) / screenHeight,
			Phase: phase,
		})
	}

	input.AspectX = screenWidth
	input.AspectY = screenHeight
}

func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("starfall")

	if err := ebiten.RunGame(newApp()); err != nil {
		log.Fatal(err)
	}
}
