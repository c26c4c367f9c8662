package scenes

import (
	"fmt"

	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/components"
	cfg "github.com/automoto/tilehop/config"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/session"
	"github.com/automoto/tilehop/systems"
	"github.com/automoto/tilehop/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// WorldScene plays the level chain from loading to the last level.
type WorldScene struct {
	ecs *ecs.ECS
}

func NewWorldScene(store *assets.Store, log *zap.Logger) (*WorldScene, error) {
	world := donburi.NewWorld()

	sess, err := session.New(store, world, cfg.SessionOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	controller := phase.NewController(sess, log)

	factory.CreateCamera(world)
	factory.CreateDebug(world, cfg.Debug.Enabled)
	factory.CreateGame(world, components.GameData{
		Phase:  controller,
		Bodies: sess.Bodies(),
		Assets: store,
	})

	ecs := ecs.NewECS(world)

	// Systems that always run
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateDebug)
	ecs.AddSystem(systems.UpdatePhase)

	// Game systems only run while a level is live
	ecs.AddSystem(systems.WithPlayingCheck(systems.UpdatePlayer))
	ecs.AddSystem(systems.WithPlayingCheck(systems.UpdateCollisions))
	ecs.AddSystem(systems.WithPlayingCheck(systems.UpdateCamera))

	// Add renderers
	ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ecs.AddRenderer(cfg.Default, systems.DrawSolids)
	ecs.AddRenderer(cfg.Default, systems.DrawPlayer)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)

	return &WorldScene{ecs: ecs}, nil
}

func (ws *WorldScene) Update() {
	ws.ecs.Update()
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.UI.BackgroundColor)
	ws.ecs.Draw(screen)
}
