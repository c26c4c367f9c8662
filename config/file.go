package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/automoto/tilehop/shared/controls"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// file mirrors the YAML overlay. Sections start from the current globals, so a file only
// needs the keys it changes.
type file struct {
	Window  Config                  `yaml:"window"`
	Assets  AssetsConfig            `yaml:"assets"`
	Level   LevelConfig             `yaml:"level"`
	Player  PlayerConfig            `yaml:"player"`
	Physics PhysicsConfig           `yaml:"physics"`
	Camera  CameraConfig            `yaml:"camera"`
	Debug   DebugConfig             `yaml:"debug"`
	UI      UIConfig                `yaml:"ui"`
	Keys    map[string][]ebiten.Key `yaml:"keys"` // action name to keys, e.g. force_transition: [R]
}

// LoadFile overlays the YAML file at path onto the defaults. Nothing is applied unless
// the whole file decodes and validates.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return Apply(data)
}

// Apply is LoadFile for bytes already in memory.
func Apply(data []byte) error {
	f := file{
		Window:  *C,
		Assets:  Assets,
		Level:   Level,
		Player:  Player,
		Physics: Physics,
		Camera:  Camera,
		Debug:   Debug,
		UI:      UI,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := f.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bindings := make(map[controls.ActionID]InputBinding, len(Input.Bindings))
	for id, b := range Input.Bindings {
		bindings[id] = b
	}
	for name, keys := range f.Keys {
		id, ok := controls.ParseAction(name)
		if !ok {
			return fmt.Errorf("invalid config: keys: unknown action %q", name)
		}
		b := bindings[id]
		b.Keys = keys
		bindings[id] = b
	}

	*C = f.Window
	Assets = f.Assets
	Level = f.Level
	Player = f.Player
	Physics = f.Physics
	Camera = f.Camera
	Debug = f.Debug
	UI = f.UI
	Input.Bindings = bindings
	return nil
}

func (f *file) validate() error {
	var errs []error
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	if f.Assets.Manifest == "" {
		errs = append(errs, errors.New("assets.manifest is required"))
	}
	if f.Player.Width <= 0 || f.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	for i, s := range f.Level.Statics {
		if s.W <= 0 || s.H <= 0 {
			errs = append(errs, fmt.Errorf("level.statics[%d]: size must be positive", i))
		}
	}
	if f.Physics.CellSize <= 0 {
		errs = append(errs, errors.New("physics.cell_size must be positive"))
	}
	if f.Physics.Workers < 1 {
		f.Physics.Workers = 1
	}
	if f.Camera.FollowSmoothing <= 0 || f.Camera.FollowSmoothing > 1 {
		errs = append(errs, errors.New("camera.follow_smoothing must be in (0, 1]"))
	}
	return errors.Join(errs...)
}
