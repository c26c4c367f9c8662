package leveldata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Tiled stores flip flags in the top bits of every gid.
const (
	flagFlipH     uint32 = 0x80000000
	flagFlipV     uint32 = 0x40000000
	flagFlipD     uint32 = 0x20000000
	flagRotateHex uint32 = 0x10000000
	gidMask              = ^(flagFlipH | flagFlipV | flagFlipD | flagRotateHex)
)

type rawMap struct {
	Width      *int              `json:"width"`
	Height     *int              `json:"height"`
	TileWidth  *int              `json:"tilewidth"`
	TileHeight *int              `json:"tileheight"`
	Infinite   bool              `json:"infinite"`
	Layers     []json.RawMessage `json:"layers"`
	Tilesets   []json.RawMessage `json:"tilesets"`
}

type rawLayer struct {
	Type        string          `json:"type"`
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Data        json.RawMessage `json:"data"`
	Encoding    string          `json:"encoding"`
	Compression string          `json:"compression"`
	Chunks      json.RawMessage `json:"chunks"`
	Objects     json.RawMessage `json:"objects"`
	Width       *int            `json:"width"`
	Height      *int            `json:"height"`
	Opacity     *float64        `json:"opacity"`
	Visible     *bool           `json:"visible"`
	X           int             `json:"x"`
	Y           int             `json:"y"`
}

type rawTilesetRef struct {
	FirstGID *uint32 `json:"firstgid"`
	Source   *string `json:"source"`
}

type rawTileset struct {
	Name        *string   `json:"name"`
	Columns     *int      `json:"columns"`
	Image       *string   `json:"image"`
	ImageWidth  *int      `json:"imagewidth"`
	ImageHeight *int      `json:"imageheight"`
	Margin      *int      `json:"margin"`
	Spacing     *int      `json:"spacing"`
	TileCount   *int      `json:"tilecount"`
	TileWidth   *int      `json:"tilewidth"`
	TileHeight  *int      `json:"tileheight"`
	Tiles       []rawTile `json:"tiles"`
}

type rawTile struct {
	ID         *uint32       `json:"id"`
	Image      string        `json:"image"`
	Properties []rawProperty `json:"properties"`
}

type rawProperty struct {
	Name  *string `json:"name"`
	Type  string  `json:"type"`
	Value any     `json:"value"`
}

// ParseMap decodes a Tiled JSON map. Only tile layers and external tileset references
// are accepted; everything else fails with ErrUnsupportedFeature.
func ParseMap(data []byte) (*MapDocument, error) {
	const op = "parse map"

	var raw rawMap
	if err := decodeStrictShape(data, &raw); err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Op: op, Err: err}
	}

	if raw.Infinite {
		return nil, unsupported(op, "infinite", "infinite (chunked) maps")
	}

	doc := &MapDocument{}
	for _, f := range []struct {
		name string
		src  *int
		dst  *int
	}{
		{"width", raw.Width, &doc.Width},
		{"height", raw.Height, &doc.Height},
		{"tilewidth", raw.TileWidth, &doc.TileWidth},
		{"tileheight", raw.TileHeight, &doc.TileHeight},
	} {
		if f.src == nil {
			return nil, malformed(op, f.name, "missing required field")
		}
		if *f.src <= 0 {
			return nil, malformed(op, f.name, "must be positive, got %d", *f.src)
		}
		*f.dst = *f.src
	}

	if raw.Layers == nil {
		return nil, malformed(op, "layers", "missing required field")
	}
	if raw.Tilesets == nil {
		return nil, malformed(op, "tilesets", "missing required field")
	}

	for i, msg := range raw.Layers {
		layer, err := parseLayer(msg, doc, fmt.Sprintf("layers[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Layers = append(doc.Layers, layer)
	}

	for i, msg := range raw.Tilesets {
		ref, err := parseTilesetRef(msg, fmt.Sprintf("tilesets[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Tilesets = append(doc.Tilesets, ref)
	}

	return doc, nil
}

func parseLayer(msg json.RawMessage, doc *MapDocument, at string) (TileLayer, error) {
	const op = "parse map"

	var raw rawLayer
	if err := decodeStrictShape(msg, &raw); err != nil {
		return TileLayer{}, &Error{Kind: ErrMalformedDocument, Op: op, Path: at, Err: err}
	}

	switch {
	case raw.Type == "tilelayer", raw.Type == "" && raw.Data != nil:
	case raw.Type == "objectgroup", raw.Type == "" && raw.Objects != nil:
		return TileLayer{}, unsupported(op, at, "object layer %q", raw.Name)
	case raw.Type == "imagelayer":
		return TileLayer{}, unsupported(op, at, "image layer %q", raw.Name)
	case raw.Type == "group":
		return TileLayer{}, unsupported(op, at, "group layer %q", raw.Name)
	case raw.Type == "":
		return TileLayer{}, malformed(op, at, "layer has neither type nor data")
	default:
		return TileLayer{}, unsupported(op, at, "layer type %q", raw.Type)
	}

	if raw.Chunks != nil {
		return TileLayer{}, unsupported(op, at+".chunks", "chunked layer data")
	}
	if raw.Encoding != "" && raw.Encoding != "csv" {
		return TileLayer{}, unsupported(op, at+".encoding", "layer encoding %q", raw.Encoding)
	}
	if raw.Compression != "" {
		return TileLayer{}, unsupported(op, at+".compression", "layer compression %q", raw.Compression)
	}
	if raw.Data == nil {
		return TileLayer{}, malformed(op, at+".data", "missing required field")
	}
	if raw.Width == nil || raw.Height == nil {
		return TileLayer{}, malformed(op, at, "missing width or height")
	}
	if *raw.Width != doc.Width || *raw.Height != doc.Height {
		return TileLayer{}, malformed(op, at, "layer is %dx%d, map is %dx%d",
			*raw.Width, *raw.Height, doc.Width, doc.Height)
	}

	var gids []uint32
	if err := json.Unmarshal(raw.Data, &gids); err != nil {
		return TileLayer{}, &Error{Kind: ErrMalformedDocument, Op: op, Path: at + ".data", Err: err}
	}
	if len(gids) != doc.Width*doc.Height {
		return TileLayer{}, malformed(op, at+".data", "has %d cells, want %d",
			len(gids), doc.Width*doc.Height)
	}

	layer := TileLayer{
		ID:      raw.ID,
		Name:    raw.Name,
		Width:   *raw.Width,
		Height:  *raw.Height,
		Data:    gids,
		Opacity: 1,
		Visible: true,
		X:       raw.X,
		Y:       raw.Y,
	}
	if raw.Opacity != nil {
		layer.Opacity = *raw.Opacity
	}
	if raw.Visible != nil {
		layer.Visible = *raw.Visible
	}
	stripFlipFlags(&layer)

	return layer, nil
}

// stripFlipFlags moves Tiled's flip bits out of the gids into layer.Flips.
func stripFlipFlags(layer *TileLayer) {
	for i, raw := range layer.Data {
		if raw&^gidMask == 0 {
			continue
		}
		if layer.Flips == nil {
			layer.Flips = make([]Flip, len(layer.Data))
		}
		layer.Flips[i] = Flip{
			Horizontal: raw&flagFlipH != 0,
			Vertical:   raw&flagFlipV != 0,
			Diagonal:   raw&flagFlipD != 0,
		}
		layer.Data[i] = raw & gidMask
	}
}

func parseTilesetRef(msg json.RawMessage, at string) (TilesetRef, error) {
	const op = "parse map"

	var raw rawTilesetRef
	if err := decodeStrictShape(msg, &raw); err != nil {
		return TilesetRef{}, &Error{Kind: ErrMalformedDocument, Op: op, Path: at, Err: err}
	}
	if raw.FirstGID == nil {
		return TilesetRef{}, malformed(op, at+".firstgid", "missing required field")
	}
	if *raw.FirstGID == 0 {
		return TilesetRef{}, malformed(op, at+".firstgid", "must be at least 1")
	}
	if raw.Source == nil {
		return TilesetRef{}, unsupported(op, at, "embedded tileset")
	}
	if *raw.Source == "" {
		return TilesetRef{}, malformed(op, at+".source", "empty source path")
	}

	return TilesetRef{FirstGID: *raw.FirstGID, Source: *raw.Source}, nil
}

// ParseTileset decodes a Tiled JSON tileset document.
func ParseTileset(data []byte) (*TilesetDescriptor, error) {
	const op = "parse tileset"

	var raw rawTileset
	if err := decodeStrictShape(data, &raw); err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Op: op, Err: err}
	}

	if raw.Image == nil {
		for _, t := range raw.Tiles {
			if t.Image != "" {
				return nil, unsupported(op, "tiles", "image collection tileset")
			}
		}
		return nil, malformed(op, "image", "missing required field")
	}
	if raw.Name == nil {
		return nil, malformed(op, "name", "missing required field")
	}

	ts := &TilesetDescriptor{
		Name:  *raw.Name,
		Image: *raw.Image,
	}
	for _, f := range []struct {
		name     string
		src      *int
		dst      *int
		positive bool
	}{
		{"columns", raw.Columns, &ts.Columns, true},
		{"tilecount", raw.TileCount, &ts.TileCount, false},
		{"tilewidth", raw.TileWidth, &ts.TileWidth, true},
		{"tileheight", raw.TileHeight, &ts.TileHeight, true},
		{"imagewidth", raw.ImageWidth, &ts.ImageWidth, false},
		{"imageheight", raw.ImageHeight, &ts.ImageHeight, false},
		{"margin", raw.Margin, &ts.Margin, false},
		{"spacing", raw.Spacing, &ts.Spacing, false},
	} {
		if f.src == nil {
			return nil, malformed(op, f.name, "missing required field")
		}
		if f.positive && *f.src <= 0 {
			return nil, malformed(op, f.name, "must be positive, got %d", *f.src)
		}
		if *f.src < 0 {
			return nil, malformed(op, f.name, "must not be negative, got %d", *f.src)
		}
		*f.dst = *f.src
	}

	for i, t := range raw.Tiles {
		at := fmt.Sprintf("tiles[%d]", i)
		if t.ID == nil {
			return nil, malformed(op, at+".id", "missing required field")
		}
		if len(t.Properties) == 0 {
			continue
		}
		props := make([]Property, 0, len(t.Properties))
		for j, p := range t.Properties {
			if p.Name == nil {
				return nil, malformed(op, fmt.Sprintf("%s.properties[%d].name", at, j), "missing required field")
			}
			props = append(props, Property{Name: *p.Name, Type: p.Type, Value: p.Value})
		}
		if ts.Properties == nil {
			ts.Properties = make(map[uint32][]Property)
		}
		ts.Properties[*t.ID] = props
	}

	return ts, nil
}

// decodeStrictShape unmarshals a JSON object; anything but an object is malformed.
func decodeStrictShape(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("expected a JSON object")
	}
	return json.Unmarshal(trimmed, v)
}
