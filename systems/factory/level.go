package factory

import (
	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/yohamta/donburi"
)

func CreateLevel(w donburi.World) *donburi.Entry {
	level := archetypes.Level.Spawn(w)
	components.Level.Set(level, &components.LevelData{})
	return level
}
