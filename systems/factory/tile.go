package factory

import (
	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateTile spawns one drawable tile stamped with the level generation it belongs to.
func CreateTile(w donburi.World, p leveldata.Placement, generation uint64) *donburi.Entry {
	tile := archetypes.Tile.Spawn(w)
	components.Tile.SetValue(tile, components.TileData{
		Placement:  p,
		Generation: generation,
	})
	return tile
}
