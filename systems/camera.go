package systems

import (
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera eases the camera toward the player. It snaps on the first frame of a level
// so a new level never opens with a pan across it.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	target := components.Actor.Get(playerEntry).Position

	generation := uint64(0)
	if levelEntry, ok := components.Level.First(e.World); ok {
		generation = components.Level.Get(levelEntry).Generation
	}
	if generation != camera.Generation {
		camera.Generation = generation
		camera.Position = target
		return
	}

	smoothing := config.Camera.FollowSmoothing
	camera.Position.X += (target.X - camera.Position.X) * smoothing
	camera.Position.Y += (target.Y - camera.Position.Y) * smoothing
}
