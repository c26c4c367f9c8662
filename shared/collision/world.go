package collision

import "slices"

const defaultCellSize = 32

// World holds the actors and solids of one level. Actors may be appended or removed
// freely between steps; solids go through SetSolids so the broad-phase stays current.
type World struct {
	Actors []*Actor

	solids   []*Solid
	cellSize int
	index    *broadPhase
}

// NewWorld returns an empty world whose broad-phase uses square cells of cellSize pixels.
func NewWorld(cellSize int) *World {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &World{cellSize: cellSize}
}

// SetSolids replaces the solid set. Order matters: overlapping solids are resolved in
// slice order.
func (w *World) SetSolids(solids []*Solid) {
	w.solids = slices.Clone(solids)
	w.index = nil
}

// Solids returns the current solid set in resolution order. Do not modify it.
func (w *World) Solids() []*Solid {
	return w.solids
}

// AddActor appends a to the world.
func (w *World) AddActor(a *Actor) {
	w.Actors = append(w.Actors, a)
}

// RemoveActor drops a from the world and reports whether it was present.
func (w *World) RemoveActor(a *Actor) bool {
	i := slices.Index(w.Actors, a)
	if i < 0 {
		return false
	}
	w.Actors = slices.Delete(w.Actors, i, i+1)
	return true
}

func (w *World) broadPhase() *broadPhase {
	if w.index == nil {
		cell := w.cellSize
		if cell <= 0 {
			cell = defaultCellSize
		}
		w.index = newBroadPhase(w.solids, cell)
	}
	return w.index
}
