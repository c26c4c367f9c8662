package factory

import (
	"github.com/automoto/tilehop/archetypes"
	"github.com/automoto/tilehop/components"
	"github.com/yohamta/donburi"
)

func CreateCamera(w donburi.World) *donburi.Entry {
	camera := archetypes.Camera.Spawn(w)
	components.Camera.Set(camera, &components.CameraData{})
	return camera
}

func CreateDebug(w donburi.World, enabled bool) *donburi.Entry {
	debug := archetypes.Debug.Spawn(w)
	components.Debug.SetValue(debug, components.DebugData{Enabled: enabled})
	return debug
}
