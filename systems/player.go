package systems

import (
	"github.com/automoto/tilehop/components"
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/shared/controls"
	"github.com/automoto/tilehop/shared/gamemath"
	"github.com/automoto/tilehop/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer steers the player's velocity from the held directions. Collision moves it.
func UpdatePlayer(e *ecs.ECS) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	actor := components.Actor.Get(entry).Actor
	player := components.Player.Get(entry)
	input := components.Input.Get(entry)

	// Left beats right and up beats down when both are held.
	actor.Velocity.X = gamemath.Steer(actor.Velocity.X,
		input.Pressed(controls.ActionMoveLeft), input.Pressed(controls.ActionMoveRight),
		gamemath.NegativeFirst, cfg.Player.Acceleration, cfg.Player.MaxSpeedX)
	actor.Velocity.Y = gamemath.Steer(actor.Velocity.Y,
		input.Pressed(controls.ActionMoveDown), input.Pressed(controls.ActionMoveUp),
		gamemath.PositiveFirst, cfg.Player.Acceleration, cfg.Player.MaxSpeedY)

	if actor.Velocity.X != 0 {
		player.Facing = gamemath.Sign(actor.Velocity.X)
	}
}
