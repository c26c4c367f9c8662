package systems

import (
	"fmt"
	"math"

	"github.com/automoto/tilehop/components"
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/shared/controls"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDebug toggles the overlay.
func UpdateDebug(e *ecs.ECS) {
	debugEntry, ok := components.Debug.First(e.World)
	if !ok {
		return
	}
	inputEntry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	if components.Input.Get(inputEntry).JustPressed(controls.ActionToggleDebug) {
		debug := components.Debug.Get(debugEntry)
		debug.Enabled = !debug.Enabled
	}
}

// DrawDebug outlines every collider and the broad-phase grid around the camera.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	debugEntry, ok := components.Debug.First(e.World)
	if !ok || !components.Debug.Get(debugEntry).Enabled {
		return
	}
	v, ok := newView(e, screen)
	if !ok {
		return
	}
	game, ok := getGame(e)
	if !ok {
		return
	}

	drawGrid(screen, v, float64(cfg.Physics.CellSize))

	solids := game.Bodies.Solids()
	for _, s := range solids {
		box := s.Box()
		if !v.visible(box) {
			continue
		}
		x, y, w, h := v.rect(box)
		vector.StrokeRect(screen, x, y, w, h, 1, cfg.UI.DebugSolidColor, false)
	}
	for _, a := range game.Bodies.Actors {
		x, y, w, h := v.rect(a.Box())
		vector.StrokeRect(screen, x, y, w, h, 1, cfg.UI.DebugActorColor, false)
	}

	lines := fmt.Sprintf("TPS %.0f  FPS %.0f\nphase %s\nsolids %d  actors %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), game.Phase.State(), len(solids), len(game.Bodies.Actors))
	if len(game.Bodies.Actors) > 0 {
		a := game.Bodies.Actors[0]
		lines += fmt.Sprintf("\npos %.1f,%.1f  vel %.1f,%.1f", a.Position.X, a.Position.Y, a.Velocity.X, a.Velocity.Y)
	}
	ebitenutil.DebugPrintAt(screen, lines, 4, int(v.height)-64)
}

func drawGrid(screen *ebiten.Image, v view, cell float64) {
	if cell <= 0 {
		return
	}
	left := math.Floor((v.camera.X-v.width/2)/cell) * cell
	bottom := math.Floor((v.camera.Y-v.height/2)/cell) * cell

	for x := left; x <= v.camera.X+v.width/2; x += cell {
		sx, _ := v.toScreen(vecXY(x, 0))
		vector.FillRect(screen, float32(sx), 0, 1, float32(v.height), cfg.UI.DebugGridColor, false)
	}
	for y := bottom; y <= v.camera.Y+v.height/2; y += cell {
		_, sy := v.toScreen(vecXY(0, y))
		vector.FillRect(screen, 0, float32(sy), float32(v.width), 1, cfg.UI.DebugGridColor, false)
	}
}
