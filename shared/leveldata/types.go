// Package leveldata provides Tiled map parsing, gid resolution, atlas slicing and the
// level manifest. It has no dependencies on ebitengine or donburi.
package leveldata

import "image"

// MapDocument is a parsed Tiled map. Every layer's data holds Width*Height gids.
type MapDocument struct {
	Width      int // tiles
	Height     int // tiles
	TileWidth  int // pixels
	TileHeight int // pixels
	Layers     []TileLayer
	Tilesets   []TilesetRef
}

// TileLayer is a row-major grid of gids, 0 meaning an empty cell.
type TileLayer struct {
	ID      int
	Name    string
	Width   int
	Height  int
	Data    []uint32 // flip flags already stripped
	Flips   []Flip   // parallel to Data, nil when no cell is flipped
	Opacity float64
	Visible bool
	X, Y    int
}

// TilesetRef points at an external tileset document. Source is resolved against the
// map document's directory.
type TilesetRef struct {
	FirstGID uint32
	Source   string
}

// TilesetDescriptor is a parsed Tiled tileset document.
type TilesetDescriptor struct {
	Name        string
	Columns     int
	TileCount   int
	TileWidth   int
	TileHeight  int
	Image       string // resolved against the tileset document's directory
	ImageWidth  int
	ImageHeight int
	Margin      int
	Spacing     int
	Properties  map[uint32][]Property // per-tile overrides keyed by local id
}

// Property is a single Tiled custom property.
type Property struct {
	Name  string
	Type  string
	Value any
}

// LevelMap is a map plus its tilesets in reference order, ready for spawning.
type LevelMap struct {
	Path     string
	Doc      *MapDocument
	Tilesets []*TilesetDescriptor
}

// Flip holds Tiled's per-cell flip flags.
type Flip struct {
	Horizontal bool
	Vertical   bool
	Diagonal   bool
}

// Placement is one tile ready for the render sink.
type Placement struct {
	Image      string
	Atlas      image.Rectangle
	X, Y       float64 // world position, y up
	Layer      int
	GID        uint32
	LocalID    uint32
	Flip       Flip
	Visible    bool
	Opacity    float64
	Properties []Property
}

// LevelDescriptor is one entry in the level manifest.
type LevelDescriptor struct {
	Name string
	Map  string
	Next string // empty when the chain ends here
}

// HasNext reports whether another level follows this one.
func (l LevelDescriptor) HasNext() bool {
	return l.Next != ""
}

// SolidRect is a static collision rectangle centred at X, Y in world space.
type SolidRect struct {
	X, Y, W, H float64
}
