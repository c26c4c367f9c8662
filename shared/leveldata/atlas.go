package leveldata

import "image"

// Slicer turns a local tile id into its pixel rectangle in the tileset image.
//
// The zero value reproduces the reference layout, which ignores the tileset's margin and
// spacing. HonorMarginSpacing offsets the grid by the margin and steps it by
// tile size plus spacing, matching how Tiled itself slices padded atlases.
type Slicer struct {
	HonorMarginSpacing bool
}

// Rect returns the atlas rectangle for local id l. Tileset columns are validated
// positive at parse time.
func (s Slicer) Rect(ts *TilesetDescriptor, l uint32) image.Rectangle {
	col := int(l) % ts.Columns
	row := int(l) / ts.Columns

	x := col * ts.TileWidth
	y := row * ts.TileHeight
	if s.HonorMarginSpacing {
		x = ts.Margin + col*(ts.TileWidth+ts.Spacing)
		y = ts.Margin + row*(ts.TileHeight+ts.Spacing)
	}

	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}
