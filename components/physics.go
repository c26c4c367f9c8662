package components

import (
	"github.com/automoto/tilehop/shared/collision"
	"github.com/yohamta/donburi"
)

// ActorData links an entity to its body in the collision world.
type ActorData struct {
	*collision.Actor
}

var Actor = donburi.NewComponentType[ActorData]()

type SolidData struct {
	*collision.Solid
}

var Solid = donburi.NewComponentType[SolidData]()
