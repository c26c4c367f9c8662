package components

import (
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Current    leveldata.LevelDescriptor
	Generation uint64 // bumped on every level enter
	Index      int    // position in the manifest
	Total      int
	Width      float64 // world size in pixels
	Height     float64
	TileCount  int
}

var Level = donburi.NewComponentType[LevelData]()
