package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/fonts"
	"github.com/automoto/tilehop/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func assetFS(root string) (fs.FS, error) {
	if root == "" {
		return assets.Embedded(), nil
	}
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	return os.DirFS(root), nil
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in settings")
	assetsDir := flag.String("assets", "", "Read game data from this directory instead of the embedded copy")
	debug := flag.Bool("debug", false, "Start with the debug overlay and development logging")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *assetsDir != "" {
		config.Assets.Root = *assetsDir
	}
	if *debug {
		config.Debug.Enabled = true
	}

	logger, err := newLogger(config.Debug.Enabled)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fsys, err := assetFS(config.Assets.Root)
	if err != nil {
		logger.Fatal("asset root unavailable", zap.String("root", config.Assets.Root), zap.Error(err))
	}
	if err := fonts.LoadDefaults(config.UI.HUDFontSize, config.UI.TitleFontSize); err != nil {
		logger.Fatal("load fonts", zap.Error(err))
	}

	scene, err := scenes.NewWorldScene(assets.NewStore(fsys, logger), logger)
	if err != nil {
		logger.Fatal("create world", zap.Error(err))
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&Game{scene: scene}); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game exited", zap.Error(err))
	}
}
