package systems

import (
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// cullPadding keeps sprites from popping at the screen edges.
const cullPadding = 64.0

// view maps y-up world coordinates to screen pixels with the camera at the centre.
type view struct {
	camera        math.Vec2
	width, height float64
}

func newView(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false // No camera yet
	}
	return view{
		camera: components.Camera.Get(cameraEntry).Position,
		width:  float64(screen.Bounds().Dx()),
		height: float64(screen.Bounds().Dy()),
	}, true
}

func vecXY(x, y float64) math.Vec2 {
	return math.Vec2{X: x, Y: y}
}

func (v view) toScreen(p math.Vec2) (float64, float64) {
	return p.X - v.camera.X + v.width/2, v.camera.Y - p.Y + v.height/2
}

// rect returns the screen-space top-left and size of a world box.
func (v view) rect(b collision.Box) (x, y, w, h float32) {
	sx, sy := v.toScreen(math.Vec2{X: b.MinX, Y: b.MaxY})
	return float32(sx), float32(sy), float32(b.MaxX - b.MinX), float32(b.MaxY - b.MinY)
}

func (v view) visible(b collision.Box) bool {
	minX := v.camera.X - v.width/2 - cullPadding
	maxX := v.camera.X + v.width/2 + cullPadding
	minY := v.camera.Y - v.height/2 - cullPadding
	maxY := v.camera.Y + v.height/2 + cullPadding
	return b.MaxX >= minX && b.MinX <= maxX && b.MaxY >= minY && b.MinY <= maxY
}
