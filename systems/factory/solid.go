package factory

import (
	"fmt"

	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CreateSolid spawns a static collider centred on (x, y). Extra components such as
// tags.LevelSolid are added to the entity. The caller hands the solid to the collision
// world so it controls resolution order.
func CreateSolid(w donburi.World, x, y, width, height float64, cs ...donburi.IComponentType) (*donburi.Entry, *collision.Solid, error) {
	solid, err := collision.NewSolid(math.Vec2{X: x, Y: y}, width, height)
	if err != nil {
		return nil, nil, fmt.Errorf("create solid at (%v,%v): %w", x, y, err)
	}

	e := archetypes.Solid.Spawn(w, cs...)
	components.Solid.SetValue(e, components.SolidData{Solid: solid})

	return e, solid, nil
}
