package components

import (
	"github.com/automoto/tilehop/shared/controls"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	controls.State
}

var Input = donburi.NewComponentType[InputData]()
