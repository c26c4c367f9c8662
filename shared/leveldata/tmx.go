package leveldata

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"

	"github.com/lafriks/go-tiled"
)

// LoadTMX parses a TMX map (and its TSX tilesets) with go-tiled and converts it into the
// same descriptors the JSON path produces. The feature set is the same: tile layers and
// external tilesets only.
func LoadTMX(fsys fs.FS, tmxPath string) (*LevelMap, error) {
	const op = "load tmx"

	data, err := readDocument(fsys, tmxPath)
	if err != nil {
		return nil, err
	}
	// go-tiled does not expose the infinite flag and fails on chunked data, so the root
	// element is checked first.
	var root tmxRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Op: op, Path: tmxPath, Err: err}
	}
	if root.Infinite {
		return nil, unsupported(op, tmxPath, "infinite (chunked) maps")
	}

	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Op: op, Path: tmxPath, Err: err}
	}

	switch {
	case len(levelMap.ObjectGroups) > 0:
		return nil, unsupported(op, tmxPath, "object layer %q", levelMap.ObjectGroups[0].Name)
	case len(levelMap.ImageLayers) > 0:
		return nil, unsupported(op, tmxPath, "image layer %q", levelMap.ImageLayers[0].Name)
	case len(levelMap.Groups) > 0:
		return nil, unsupported(op, tmxPath, "group layer %q", levelMap.Groups[0].Name)
	}

	doc := &MapDocument{
		Width:      levelMap.Width,
		Height:     levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}
	if doc.Width <= 0 || doc.Height <= 0 || doc.TileWidth <= 0 || doc.TileHeight <= 0 {
		return nil, malformed(op, tmxPath, "map and tile sizes must be positive")
	}

	m := &LevelMap{Path: tmxPath, Doc: doc}
	for i, ts := range levelMap.Tilesets {
		if ts.Source == "" {
			return nil, unsupported(op, fmt.Sprintf("%s tilesets[%d]", tmxPath, i), "embedded tileset %q", ts.Name)
		}
		desc, err := tilesetFromTMX(ts)
		if err != nil {
			return nil, fmt.Errorf("tileset %s: %w", ts.Source, err)
		}
		doc.Tilesets = append(doc.Tilesets, TilesetRef{
			FirstGID: ts.FirstGID,
			Source:   path.Clean(path.Join(path.Dir(tmxPath), ts.Source)),
		})
		m.Tilesets = append(m.Tilesets, desc)
	}

	for i, l := range levelMap.Layers {
		if len(l.Tiles) != doc.Width*doc.Height {
			return nil, malformed(op, fmt.Sprintf("%s layers[%d]", tmxPath, i),
				"has %d cells, want %d", len(l.Tiles), doc.Width*doc.Height)
		}
		layer := TileLayer{
			ID:      int(l.ID),
			Name:    l.Name,
			Width:   doc.Width,
			Height:  doc.Height,
			Data:    make([]uint32, len(l.Tiles)),
			Opacity: float64(l.Opacity),
			Visible: l.Visible,
			X:       l.OffsetX,
			Y:       l.OffsetY,
		}
		for idx, tile := range l.Tiles {
			if tile.IsNil() {
				continue
			}
			layer.Data[idx] = tile.Tileset.FirstGID + tile.ID
			if tile.HorizontalFlip || tile.VerticalFlip || tile.DiagonalFlip {
				if layer.Flips == nil {
					layer.Flips = make([]Flip, len(l.Tiles))
				}
				layer.Flips[idx] = Flip{
					Horizontal: tile.HorizontalFlip,
					Vertical:   tile.VerticalFlip,
					Diagonal:   tile.DiagonalFlip,
				}
			}
		}
		doc.Layers = append(doc.Layers, layer)
	}

	return m, nil
}

type tmxRoot struct {
	XMLName  xml.Name `xml:"map"`
	Infinite bool     `xml:"infinite,attr"`
}

func tilesetFromTMX(ts *tiled.Tileset) (*TilesetDescriptor, error) {
	const op = "load tmx"

	if ts.Image == nil {
		return nil, unsupported(op, ts.Source, "image collection tileset")
	}
	if ts.Columns <= 0 {
		return nil, malformed(op, ts.Source+" columns", "must be positive, got %d", ts.Columns)
	}
	if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, malformed(op, ts.Source, "tile size must be positive")
	}

	desc := &TilesetDescriptor{
		Name:        ts.Name,
		Columns:     ts.Columns,
		TileCount:   ts.TileCount,
		TileWidth:   ts.TileWidth,
		TileHeight:  ts.TileHeight,
		Image:       path.Clean(filepath.ToSlash(ts.GetFileFullPath(ts.Image.Source))),
		ImageWidth:  ts.Image.Width,
		ImageHeight: ts.Image.Height,
		Margin:      ts.Margin,
		Spacing:     ts.Spacing,
	}

	for _, tile := range ts.Tiles {
		if len(tile.Properties) == 0 {
			continue
		}
		props := make([]Property, 0, len(tile.Properties))
		for _, p := range tile.Properties {
			props = append(props, Property{Name: p.Name, Type: p.Type, Value: typedValue(p.Type, p.Value)})
		}
		if desc.Properties == nil {
			desc.Properties = make(map[uint32][]Property)
		}
		desc.Properties[tile.ID] = props
	}

	return desc, nil
}

// typedValue converts TMX's string-typed property values to what the JSON decoder yields.
func typedValue(typ, value string) any {
	switch typ {
	case "int", "float", "object":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case "bool":
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}
