// Package session holds everything one run of the game owns: the asset store, the level
// registry and current level, the entity world and the collision world. It is the
// runtime the phase controller drives.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/shared/collision"
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/automoto/tilehop/systems/factory"
	"github.com/automoto/tilehop/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"
)

// Options is the session's slice of the game configuration.
type Options struct {
	Manifest     string   // level manifest path inside the asset FS
	Folders      []string // folders preloaded before play
	SolidLayer   string   // tile layer whose tiles also collide; empty for none
	AllowOverlap bool     // resolve overlapping tileset ranges last-write-wins
	Slicer       leveldata.Slicer
	CellSize     int // collision broad-phase cell size

	PlayerSpawn  math.Vec2
	PlayerSize   math.Vec2
	StaticSolids []leveldata.SolidRect
}

type Session struct {
	opts  Options
	log   *zap.Logger
	store *assets.Store
	world donburi.World

	bodies      *collision.World
	statics     []*collision.Solid
	levelSolids []*collision.Solid

	registry   *leveldata.Registry
	current    leveldata.LevelDescriptor
	generation uint64

	player *donburi.Entry
	level  *donburi.Entry
}

var _ phase.Runtime = (*Session)(nil)

// New creates the session's long-lived entities: the level record, the static solids and
// the player.
func New(store *assets.Store, world donburi.World, opts Options, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		opts:   opts,
		log:    log.Named("session"),
		store:  store,
		world:  world,
		bodies: collision.NewWorld(opts.CellSize),
	}

	s.level = factory.CreateLevel(world)

	for _, r := range opts.StaticSolids {
		_, solid, err := factory.CreateSolid(world, r.X, r.Y, r.W, r.H)
		if err != nil {
			return nil, fmt.Errorf("static solid: %w", err)
		}
		s.statics = append(s.statics, solid)
	}
	s.bodies.SetSolids(s.statics)

	player, err := factory.CreatePlayer(world, s.bodies, opts.PlayerSpawn, opts.PlayerSize.X, opts.PlayerSize.Y)
	if err != nil {
		return nil, err
	}
	s.player = player

	return s, nil
}

func (s *Session) Preload() {
	s.log.Info("preloading assets", zap.Strings("folders", s.opts.Folders), zap.String("manifest", s.opts.Manifest))
	s.store.Preload(s.opts.Folders, s.opts.Manifest)
}

func (s *Session) PollLoad() (phase.LoadStatus, error) {
	status, err := s.store.Status()
	switch status {
	case assets.StatusLoaded:
		return phase.LoadDone, nil
	case assets.StatusFailed:
		return phase.LoadFailed, err
	}
	return phase.LoadPending, nil
}

// BuildRegistry parses the manifest and selects its first level.
func (s *Session) BuildRegistry() error {
	data, err := s.store.ReadFile(s.opts.Manifest)
	if err != nil {
		return leveldata.AssetLoadError(s.opts.Manifest, err)
	}
	reg, err := leveldata.ParseManifest(data)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", s.opts.Manifest, err)
	}

	for _, l := range reg.DanglingNext() {
		s.log.Warn("level names a missing next level", zap.String("level", l.Name), zap.String("next", l.Next))
	}

	s.registry = reg
	s.setCurrent(reg.First())
	s.log.Info("level registry built", zap.Int("levels", reg.Len()), zap.String("first", s.current.Name))
	return nil
}

func (s *Session) SelectLevel(name string) error {
	if s.registry == nil {
		return errors.New("select level: registry not built")
	}
	l, err := s.registry.Lookup(name)
	if err != nil {
		return fmt.Errorf("next level of %q: %w", s.current.Name, err)
	}
	s.setCurrent(l)
	return nil
}

func (s *Session) setCurrent(l leveldata.LevelDescriptor) {
	s.current = l
	ld := components.Level.Get(s.level)
	ld.Current = l
	ld.Total = s.registry.Len()
	ld.Index = slices.IndexFunc(s.registry.Levels(), func(d leveldata.LevelDescriptor) bool {
		return d.Name == l.Name
	})
}

// SpawnLevel loads the current level's map and creates its tiles and solids. Nothing is
// spawned unless the whole map resolves.
func (s *Session) SpawnLevel() error {
	if s.registry == nil {
		return errors.New("spawn level: registry not built")
	}
	l := s.current

	m, err := leveldata.LoadLevelMap(s.store, l.Map)
	if err != nil {
		return fmt.Errorf("level %q: %w", l.Name, err)
	}
	table, err := leveldata.BuildGidTable(m.Doc.Tilesets, m.Tilesets, s.opts.AllowOverlap)
	if err != nil {
		return fmt.Errorf("level %q: %w", l.Name, err)
	}
	for _, o := range table.Overlaps() {
		s.log.Warn("overlapping tileset ranges", zap.String("level", l.Name), zap.Stringer("overlap", o))
	}
	placements, err := leveldata.BuildPlacements(m, table, s.opts.Slicer)
	if err != nil {
		return fmt.Errorf("level %q: %w", l.Name, err)
	}

	s.generation++
	for _, p := range placements {
		factory.CreateTile(s.world, p, s.generation)
	}

	for _, r := range leveldata.SolidsFromLayer(m.Doc, s.opts.SolidLayer) {
		_, solid, err := factory.CreateSolid(s.world, r.X, r.Y, r.W, r.H, tags.LevelSolid)
		if err != nil {
			return fmt.Errorf("level %q: %w", l.Name, err)
		}
		s.levelSolids = append(s.levelSolids, solid)
	}
	s.bodies.SetSolids(slices.Concat(s.statics, s.levelSolids))

	s.resetPlayer()

	ld := components.Level.Get(s.level)
	ld.Generation = s.generation
	ld.Width = float64(m.Doc.Width * m.Doc.TileWidth)
	ld.Height = float64(m.Doc.Height * m.Doc.TileHeight)
	ld.TileCount = len(placements)

	s.log.Info("level entered",
		zap.String("level", l.Name),
		zap.String("map", l.Map),
		zap.Int("tiles", len(placements)),
		zap.Int("solids", len(s.levelSolids)),
		zap.Uint64("generation", s.generation),
	)
	return nil
}

// DespawnLevel removes every tile and map solid. Static solids and the player stay.
func (s *Session) DespawnLevel() {
	var doomed []donburi.Entity
	tags.Tile.Each(s.world, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	tiles := len(doomed)
	tags.LevelSolid.Each(s.world, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		s.world.Remove(e)
	}

	s.levelSolids = nil
	s.bodies.SetSolids(s.statics)

	ld := components.Level.Get(s.level)
	ld.TileCount = 0

	s.log.Info("level exited", zap.String("level", s.current.Name), zap.Int("tiles", tiles))
}

func (s *Session) NextLevel() (string, bool) {
	return s.current.Next, s.current.HasNext()
}

func (s *Session) resetPlayer() {
	actor := components.Actor.Get(s.player).Actor
	actor.Position = s.opts.PlayerSpawn
	actor.Velocity = math.Vec2{}
}

// Current is the level being played, or the one just left while transitioning.
func (s *Session) Current() leveldata.LevelDescriptor {
	return s.current
}

func (s *Session) Registry() *leveldata.Registry {
	return s.registry
}

func (s *Session) Bodies() *collision.World {
	return s.bodies
}

func (s *Session) Player() *donburi.Entry {
	return s.player
}

func (s *Session) World() donburi.World {
	return s.world
}

func (s *Session) Store() *assets.Store {
	return s.store
}

func (s *Session) Generation() uint64 {
	return s.generation
}
