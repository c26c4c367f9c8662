package factory

import (
	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/yohamta/donburi"
)

func CreateGame(w donburi.World, data components.GameData) *donburi.Entry {
	game := archetypes.Game.Spawn(w)
	components.Game.SetValue(game, data)
	return game
}
