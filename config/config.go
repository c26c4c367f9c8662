package config

import (
	"image/color"
	"runtime"

	"github.com/yohamta/donburi/ecs"
)

const (
	Default ecs.LayerID = iota
)

type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig says where game data lives and what is preloaded before play.
type AssetsConfig struct {
	Root     string   `yaml:"root"`     // directory on disk; empty uses the embedded data
	Manifest string   `yaml:"manifest"` // level manifest, relative to the root
	Folders  []string `yaml:"folders"`  // preloaded in the background during Loading
}

type LevelConfig struct {
	SolidLayer         string `yaml:"solid_layer"` // tile layer that also collides
	AllowOverlap       bool   `yaml:"allow_overlap"`
	HonorMarginSpacing bool   `yaml:"honor_margin_spacing"`

	// Statics are level-independent colliders, centred on X/Y.
	Statics []SolidConfig `yaml:"statics"`
}

type SolidConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Movement
	Acceleration float64 `yaml:"acceleration"` // per tick while a direction is held
	MaxSpeedX    float64 `yaml:"max_speed_x"`
	MaxSpeedY    float64 `yaml:"max_speed_y"`
}

type PhysicsConfig struct {
	CellSize int `yaml:"cell_size"` // broad-phase grid cell in pixels
	Workers  int `yaml:"workers"`   // actors resolved in parallel; 1 keeps it sequential
}

type CameraConfig struct {
	FollowSmoothing float64 `yaml:"follow_smoothing"` // How fast camera follows player (0.0-1.0)
}

type DebugConfig struct {
	Enabled bool `yaml:"enabled"` // overlay on at start, development logging
}

// UIConfig contains HUD and overlay colors and sizes
type UIConfig struct {
	HUDFontSize   float64 `yaml:"hud_font_size"`
	TitleFontSize float64 `yaml:"title_font_size"`

	BackgroundColor color.RGBA `yaml:"-"`
	PlayerColor     color.RGBA `yaml:"-"`
	SolidColor      color.RGBA `yaml:"-"`
	HUDTextColor    color.RGBA `yaml:"-"`
	HUDTextBgColor  color.RGBA `yaml:"-"`
	FailureColor    color.RGBA `yaml:"-"`

	// Debug colors
	DebugActorColor color.RGBA `yaml:"-"`
	DebugSolidColor color.RGBA `yaml:"-"`
	DebugGridColor  color.RGBA `yaml:"-"`
}

var C *Config
var Assets AssetsConfig
var Level LevelConfig
var Player PlayerConfig
var Physics PhysicsConfig
var Camera CameraConfig
var Debug DebugConfig
var UI UIConfig

var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "tilehop",
	}

	Assets = AssetsConfig{
		Manifest: "levels.json",
		Folders:  []string{"levels", "tilesets", "textures"},
	}

	Level = LevelConfig{
		SolidLayer:         "solids",
		AllowOverlap:       false,
		HonorMarginSpacing: false,
		Statics: []SolidConfig{
			{X: 200, Y: 0, W: 100, H: 100},
			{X: -150, Y: 0, W: 100, H: 50},
			{X: 0, Y: -100, W: 400, H: 32},
		},
	}

	Player = PlayerConfig{
		SpawnX: 0,
		SpawnY: 0,
		Width:  32,
		Height: 32,

		Acceleration: 1,
		MaxSpeedX:    12,
		MaxSpeedY:    32,
	}

	Physics = PhysicsConfig{
		CellSize: 16,
		Workers:  runtime.GOMAXPROCS(0),
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.15,
	}

	Debug = DebugConfig{
		Enabled: false,
	}

	UI = UIConfig{
		HUDFontSize:   12,
		TitleFontSize: 24,

		BackgroundColor: color.RGBA{R: 15, G: 25, B: 50, A: 255},
		PlayerColor:     Orange,
		SolidColor:      color.RGBA{R: 90, G: 90, B: 110, A: 255},
		HUDTextColor:    White,
		HUDTextBgColor:  BlackOverlay,
		FailureColor:    LightRed,

		DebugActorColor: Blue,
		DebugSolidColor: Green,
		DebugGridColor:  color.RGBA{R: 255, G: 255, B: 255, A: 40},
	}
}
