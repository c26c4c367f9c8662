package components

import (
	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/yohamta/donburi"
)

// GameData gives systems the session-wide services that are not entities themselves.
type GameData struct {
	Phase  *phase.Controller
	Bodies *collision.World
	Assets *assets.Store
}

var Game = donburi.NewComponentType[GameData]()
