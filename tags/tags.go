package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Tile   = donburi.NewTag().SetName("Tile")
	Solid  = donburi.NewTag().SetName("Solid")
	// LevelSolid marks solids that came from a map layer and leave with the level.
	LevelSolid = donburi.NewTag().SetName("LevelSolid")
)
