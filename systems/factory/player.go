package factory

import (
	"fmt"

	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CreatePlayer spawns the player entity and registers its body as an actor in cw.
func CreatePlayer(w donburi.World, cw *collision.World, spawn math.Vec2, width, height float64) (*donburi.Entry, error) {
	actor, err := collision.NewActor(spawn, width, height)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	player := archetypes.Player.Spawn(w)
	components.Actor.SetValue(player, components.ActorData{Actor: actor})
	components.Player.SetValue(player, components.PlayerData{
		Spawn:  spawn,
		Facing: 1,
	})
	cw.AddActor(actor)

	return player, nil
}
