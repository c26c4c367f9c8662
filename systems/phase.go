package systems

import (
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/shared/controls"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhase ticks the phase controller, then turns a released force-transition key
// into a transition request. The request is served on the next tick.
func UpdatePhase(e *ecs.ECS) {
	game, ok := getGame(e)
	if !ok {
		return
	}
	game.Phase.Tick()

	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	if components.Input.Get(entry).JustReleased(controls.ActionForceTransition) {
		game.Phase.RequestTransition()
	}
}

// WithPlayingCheck wraps a system to run only while a level is being played.
func WithPlayingCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if game, ok := getGame(e); !ok || game.Phase.State() != phase.Playing {
			return
		}
		system(e)
	}
}

func getGame(e *ecs.ECS) (*components.GameData, bool) {
	entry, ok := components.Game.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Game.Get(entry), true
}
