package collision

import (
	"github.com/automoto/tilehop/shared/gamemath"
	"golang.org/x/sync/errgroup"
)

type axis int

const (
	axisX axis = iota
	axisY
)

// Resolver advances every actor by its velocity and pushes it out of solids, X first and
// then Y. Workers > 1 spreads actors over that many goroutines; solids are only read
// during a step and each actor belongs to one goroutine, so the result is the same.
type Resolver struct {
	Workers int
}

// Step runs one tick of movement and collision for w.
func (r Resolver) Step(w *World) {
	bp := w.broadPhase()
	n := len(w.Actors)

	if r.Workers <= 1 || n < 2 {
		s := bp.newScratch()
		for _, a := range w.Actors {
			resolveActor(a, w.solids, bp, s)
		}
		return
	}

	workers := min(r.Workers, n)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		actors := w.Actors[start:min(start+chunk, n)]
		g.Go(func() error {
			s := bp.newScratch()
			for _, a := range actors {
				resolveActor(a, w.solids, bp, s)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func resolveActor(a *Actor, solids []*Solid, bp *broadPhase, s *scratch) {
	a.Position.X += a.Velocity.X
	resolveAxis(a, axisX, solids, bp, s)

	a.Position.Y += a.Velocity.Y
	resolveAxis(a, axisY, solids, bp, s)
}

// resolveAxis visits solids in order and corrects the actor against each one it
// strictly overlaps at that moment. A correction can move the actor into a solid that
// was not a candidate before, so candidates are recomputed after every push.
func resolveAxis(a *Actor, ax axis, solids []*Solid, bp *broadPhase, s *scratch) {
	v := a.Velocity.X
	if ax == axisY {
		v = a.Velocity.Y
	}
	sign := gamemath.Sign(v)
	if sign == 0 {
		return
	}

	last := -1
	for {
		next := -1
		box := a.Box()
		for _, i := range bp.candidates(box, s) {
			if i > last && box.Overlaps(solids[i].Box()) {
				next = i
				break
			}
		}
		if next < 0 {
			return
		}

		sb := solids[next].Box()
		if ax == axisX {
			a.Position.X += gamemath.Overlap(box.MinX, box.MaxX, sb.MinX, sb.MaxX) * -sign
		} else {
			a.Position.Y += gamemath.Overlap(box.MinY, box.MaxY, sb.MinY, sb.MaxY) * -sign
		}
		last = next
	}
}
