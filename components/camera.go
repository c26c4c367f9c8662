package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the world point shown at the centre of the screen.
type CameraData struct {
	Position   math.Vec2
	Generation uint64 // level generation the camera last snapped to
}

var Camera = donburi.NewComponentType[CameraData]()
