package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type PlayerData struct {
	Spawn  math.Vec2
	Facing float64 // -1 or 1
}

var Player = donburi.NewComponentType[PlayerData]()
