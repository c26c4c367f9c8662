package archetypes

import (
	"slices"

	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/tags"
	"github.com/yohamta/donburi"
)

var (
	Tile = newArchetype(
		tags.Tile,
		components.Tile,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Actor,
		components.Input,
	)
	Solid = newArchetype(
		tags.Solid,
		components.Solid,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Debug = newArchetype(
		components.Debug,
	)
	Game = newArchetype(
		components.Game,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(slices.Concat(a.components, cs)...))
}
