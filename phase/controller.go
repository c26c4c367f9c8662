package phase

import (
	"go.uber.org/zap"
)

// Runtime is the game state the controller acts on. Calls happen on the tick goroutine.
type Runtime interface {
	// Preload starts loading every asset in the background.
	Preload()
	// PollLoad reports loading progress without blocking.
	PollLoad() (LoadStatus, error)
	BuildRegistry() error
	SelectLevel(name string) error
	SpawnLevel() error
	DespawnLevel()
	// NextLevel returns the current level's successor.
	NextLevel() (string, bool)
}

// Controller owns the phase state and is ticked once per frame.
type Controller struct {
	rt     Runtime
	log    *zap.Logger
	state  State
	err    error
	booted bool
}

func NewController(rt Runtime, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{rt: rt, log: log.Named("phase")}
}

func (c *Controller) State() State {
	return c.state
}

// Err is the failure that moved the controller to Failed.
func (c *Controller) Err() error {
	return c.err
}

// Tick advances the phases that progress on their own: Loading boots and polls the
// loader, Transitioning moves on to the next level or finishes the chain.
func (c *Controller) Tick() {
	switch c.state {
	case Loading:
		if !c.booted {
			c.booted = true
			c.Dispatch(Boot{})
		}
		status, err := c.rt.PollLoad()
		c.Dispatch(LoadProgress{Status: status, Err: err})
	case Transitioning:
		next, ok := c.rt.NextLevel()
		c.Dispatch(Advance{Next: next, HasNext: ok})
	}
}

// RequestTransition ends the current level. It is ignored outside Playing.
func (c *Controller) RequestTransition() {
	c.Dispatch(ForceTransition{})
}

// Dispatch applies ev and runs the resulting effects. An effect error becomes a Fault.
func (c *Controller) Dispatch(ev Event) {
	prev := c.state
	next, effects := Transition(prev, ev)
	c.state = next

	if next != prev {
		c.log.Info("phase transition",
			zap.Stringer("from", prev),
			zap.Stringer("to", next),
			zap.String("event", ev.eventName()),
		)
	}

	for _, eff := range effects {
		if err := c.run(eff); err != nil {
			c.log.Warn("effect failed", zap.String("effect", eff.effectName()), zap.Error(err))
			c.Dispatch(Fault{Err: err})
			return
		}
	}
}

func (c *Controller) run(eff Effect) error {
	switch eff := eff.(type) {
	case Preload:
		c.rt.Preload()
	case BuildRegistry:
		return c.rt.BuildRegistry()
	case SelectLevel:
		return c.rt.SelectLevel(eff.Level)
	case SpawnLevel:
		return c.rt.SpawnLevel()
	case DespawnLevel:
		c.rt.DespawnLevel()
	case ReportFailure:
		c.err = eff.Err
		c.log.Error("game failed", zap.Error(eff.Err))
	}
	return nil
}
