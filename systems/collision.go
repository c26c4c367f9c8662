package systems

import (
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCollisions moves every actor by its velocity and pushes it out of solids.
func UpdateCollisions(e *ecs.ECS) {
	game, ok := getGame(e)
	if !ok {
		return
	}
	collision.Resolver{Workers: cfg.Physics.Workers}.Step(game.Bodies)
}
