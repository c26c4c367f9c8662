// Package collision resolves dynamic actors against static solids with per-axis AABB
// push-back. Positions are box centres; collider sizes are full extents.
package collision

import (
	"errors"
	"fmt"
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// ErrInvalidCollider is returned when a collider has a non-positive or non-finite extent.
var ErrInvalidCollider = errors.New("invalid collider")

// Collider is an axis-aligned box of Size centred on its owner's position.
type Collider struct {
	Size dmath.Vec2
}

func NewCollider(w, h float64) (Collider, error) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Collider{}, fmt.Errorf("%w: size %vx%v", ErrInvalidCollider, w, h)
	}
	return Collider{Size: dmath.Vec2{X: w, Y: h}}, nil
}

func (c Collider) HalfExtents() dmath.Vec2 {
	return dmath.Vec2{X: c.Size.X / 2, Y: c.Size.Y / 2}
}

// Box is an AABB in world space.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoxAt places collider c centred on pos.
func BoxAt(pos dmath.Vec2, c Collider) Box {
	half := c.HalfExtents()
	return Box{
		MinX: pos.X - half.X,
		MinY: pos.Y - half.Y,
		MaxX: pos.X + half.X,
		MaxY: pos.Y + half.Y,
	}
}

// Overlaps reports strict intersection. Boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Actor is a dynamic body. Step moves it by Velocity once per tick.
type Actor struct {
	Position dmath.Vec2
	Velocity dmath.Vec2
	Collider Collider
}

func NewActor(pos dmath.Vec2, w, h float64) (*Actor, error) {
	c, err := NewCollider(w, h)
	if err != nil {
		return nil, err
	}
	return &Actor{Position: pos, Collider: c}, nil
}

func (a *Actor) Box() Box {
	return BoxAt(a.Position, a.Collider)
}

// Solid never moves. Changing a solid after handing it to a World requires SetSolids again.
type Solid struct {
	Position dmath.Vec2
	Collider Collider
}

func NewSolid(pos dmath.Vec2, w, h float64) (*Solid, error) {
	c, err := NewCollider(w, h)
	if err != nil {
		return nil, err
	}
	return &Solid{Position: pos, Collider: c}, nil
}

func (s *Solid) Box() Box {
	return BoxAt(s.Position, s.Collider)
}
