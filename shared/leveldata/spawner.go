package leveldata

import "fmt"

// BuildPlacements walks every tile layer of m and returns one placement per non-empty
// cell. Row 0 of the document is the top row; world y grows upward, so rows are flipped.
func BuildPlacements(m *LevelMap, table *GidTable, slicer Slicer) ([]Placement, error) {
	doc := m.Doc
	var placements []Placement

	for li, layer := range doc.Layers {
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				idx := y*layer.Width + x
				gid := layer.Data[idx]
				if gid == 0 {
					continue
				}

				ref, err := table.Resolve(gid)
				if err != nil {
					return nil, fmt.Errorf("layer %q cell (%d,%d): %w", layer.Name, x, y, err)
				}
				ts := m.Tilesets[ref.Tileset]

				p := Placement{
					Image:      ts.Image,
					Atlas:      slicer.Rect(ts, ref.Local),
					X:          float64(x * doc.TileWidth),
					Y:          float64((doc.Height - 1 - y) * doc.TileHeight),
					Layer:      li,
					GID:        gid,
					LocalID:    ref.Local,
					Visible:    layer.Visible,
					Opacity:    layer.Opacity,
					Properties: ts.Properties[ref.Local],
				}
				if layer.Flips != nil {
					p.Flip = layer.Flips[idx]
				}
				placements = append(placements, p)
			}
		}
	}

	return placements, nil
}

// SolidsFromLayer returns one tile-sized solid per non-empty cell of the named layer,
// centred on the same world cell the placement uses. A missing layer yields no solids.
func SolidsFromLayer(doc *MapDocument, layerName string) []SolidRect {
	if layerName == "" {
		return nil
	}

	tileW := float64(doc.TileWidth)
	tileH := float64(doc.TileHeight)

	var solids []SolidRect
	for _, layer := range doc.Layers {
		if layer.Name != layerName {
			continue
		}
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				if layer.Data[y*layer.Width+x] == 0 {
					continue
				}
				solids = append(solids, SolidRect{
					X: float64(x) * tileW,
					Y: float64(doc.Height-1-y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	return solids
}
