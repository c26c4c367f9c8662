package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/components"
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/automoto/tilehop/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/filter"
)

var (
	drawOp = &ebiten.DrawImageOptions{}

	// textures caches GPU images by asset path. A nil entry marks a texture that failed
	// to decode so it is not retried every frame.
	textures = map[string]*ebiten.Image{}

	tileBuf []*components.TileData

	staticSolids = donburi.NewQuery(filter.And(
		filter.Contains(tags.Solid),
		filter.Not(filter.Contains(tags.LevelSolid)),
	))
)

// transpose is Tiled's diagonal flip.
var transpose = func() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, 0)
	g.SetElement(0, 1, 1)
	g.SetElement(1, 0, 1)
	g.SetElement(1, 1, 0)
	return g
}()

// DrawLevel renders the current level's tiles in layer order.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := newView(e, screen)
	if !ok {
		return
	}
	game, ok := getGame(e)
	if !ok {
		return
	}

	tileBuf = tileBuf[:0]
	components.Tile.Each(e.World, func(entry *donburi.Entry) {
		tileBuf = append(tileBuf, components.Tile.Get(entry))
	})
	slices.SortStableFunc(tileBuf, func(a, b *components.TileData) int {
		return cmp.Compare(a.Layer, b.Layer)
	})

	for _, tile := range tileBuf {
		if !tile.Visible || tile.Opacity <= 0 {
			continue
		}
		w, h := float64(tile.Atlas.Dx()), float64(tile.Atlas.Dy())
		if !v.visible(collision.Box{MinX: tile.X - w/2, MinY: tile.Y - h/2, MaxX: tile.X + w/2, MaxY: tile.Y + h/2}) {
			continue
		}

		sheet := texture(game.Assets, tile.Image)
		if sheet == nil {
			continue
		}
		img := sheet.SubImage(tile.Atlas).(*ebiten.Image)

		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		// Flip around the tile centre.
		drawOp.GeoM.Translate(-w/2, -h/2)
		applyFlip(&drawOp.GeoM, tile.Flip)
		sx, sy := v.toScreen(math.Vec2{X: tile.X, Y: tile.Y})
		drawOp.GeoM.Translate(sx, sy)
		drawOp.ColorScale.ScaleAlpha(float32(tile.Opacity))

		screen.DrawImage(img, drawOp)
	}
}

func applyFlip(g *ebiten.GeoM, f leveldata.Flip) {
	if f.Diagonal {
		g.Concat(transpose)
	}
	if f.Horizontal {
		g.Scale(-1, 1)
	}
	if f.Vertical {
		g.Scale(1, -1)
	}
}

func texture(store *assets.Store, path string) *ebiten.Image {
	if img, ok := textures[path]; ok {
		return img
	}
	src, err := store.Image(path)
	if err != nil {
		textures[path] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	textures[path] = img
	return img
}

// DrawSolids fills the level-independent solids. Map solids are drawn by their tiles.
func DrawSolids(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := newView(e, screen)
	if !ok {
		return
	}

	staticSolids.Each(e.World, func(entry *donburi.Entry) {
		box := components.Solid.Get(entry).Box()
		if !v.visible(box) {
			return
		}
		x, y, w, h := v.rect(box)
		vector.FillRect(screen, x, y, w, h, cfg.UI.SolidColor, false)
	})
}

func DrawPlayer(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := newView(e, screen)
	if !ok {
		return
	}
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}

	box := components.Actor.Get(entry).Box()
	x, y, w, h := v.rect(box)
	vector.FillRect(screen, x, y, w, h, cfg.UI.PlayerColor, false)

	// Facing marker.
	player := components.Player.Get(entry)
	markX := x + w/2 + float32(player.Facing)*w/4 - 2
	vector.FillRect(screen, markX, y+h/4, 4, 4, cfg.White, false)
}
