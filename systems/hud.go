package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/tilehop/components"
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/fonts"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/shared/textutil"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin  = 8
	hudPadding = 4
	hudHeight  = 20

	bannerDetailRunes = 90
)

// DrawHUD shows the current level, or what the phase controller is waiting on.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	game, ok := getGame(e)
	if !ok {
		return
	}

	switch game.Phase.State() {
	case phase.Loading:
		loaded, total := game.Assets.Progress()
		drawBanner(screen, "Loading", fmt.Sprintf("%d / %d files", loaded, total), cfg.UI.HUDTextColor)
	case phase.Playing, phase.Transitioning:
		levelEntry, ok := components.Level.First(e.World)
		if !ok {
			return
		}
		level := components.Level.Get(levelEntry)
		label := fmt.Sprintf("%s  %d/%d", level.Current.Name, level.Index+1, level.Total)
		if level.Current.HasNext() {
			label += "  [T] next: " + level.Current.Next
		} else {
			label += "  [T] finish"
		}
		drawLabel(screen, label)
	case phase.Finished:
		drawBanner(screen, "All levels complete", "", cfg.UI.HUDTextColor)
	case phase.Failed:
		msg := ""
		if err := game.Phase.Err(); err != nil {
			msg = err.Error()
		}
		drawBanner(screen, "Failed", msg, cfg.UI.FailureColor)
	}
}

func drawLabel(screen *ebiten.Image, label string) {
	face := fonts.HUD.Get()
	width := text.BoundString(face, label).Dx()

	vector.FillRect(screen, hudMargin, hudMargin,
		float32(width+2*hudPadding), hudHeight, cfg.UI.HUDTextBgColor, false)
	text.Draw(screen, label, face, hudMargin+hudPadding, hudMargin+hudHeight-6, cfg.UI.HUDTextColor)
}

// drawBanner centres a title and an optional detail line over a dimmed screen.
func drawBanner(screen *ebiten.Image, title, detail string, titleColor color.Color) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.BlackOverlay, false)

	titleFace := fonts.Title.Get()
	titleX := (width - text.BoundString(titleFace, title).Dx()) / 2
	text.Draw(screen, title, titleFace, titleX, height/2, titleColor)

	if detail == "" {
		return
	}
	face := fonts.HUD.Get()
	detail = textutil.Truncate(detail, bannerDetailRunes)
	detailX := max((width-text.BoundString(face, detail).Dx())/2, hudMargin)
	text.Draw(screen, detail, face, detailX, height/2+24, cfg.UI.HUDTextColor)
}
