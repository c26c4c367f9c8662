package config

import (
	"github.com/automoto/tilehop/session"
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/yohamta/donburi/features/math"
)

// SessionOptions collects the session's settings from the current globals.
func SessionOptions() session.Options {
	statics := make([]leveldata.SolidRect, 0, len(Level.Statics))
	for _, s := range Level.Statics {
		statics = append(statics, leveldata.SolidRect{X: s.X, Y: s.Y, W: s.W, H: s.H})
	}

	return session.Options{
		Manifest:     Assets.Manifest,
		Folders:      Assets.Folders,
		SolidLayer:   Level.SolidLayer,
		AllowOverlap: Level.AllowOverlap,
		Slicer:       leveldata.Slicer{HonorMarginSpacing: Level.HonorMarginSpacing},
		CellSize:     Physics.CellSize,
		PlayerSpawn:  math.Vec2{X: Player.SpawnX, Y: Player.SpawnY},
		PlayerSize:   math.Vec2{X: Player.Width, Y: Player.Height},
		StaticSolids: statics,
	}
}
