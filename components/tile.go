package components

import (
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/yohamta/donburi"
)

type TileData struct {
	leveldata.Placement
	Generation uint64
}

var Tile = donburi.NewComponentType[TileData]()
