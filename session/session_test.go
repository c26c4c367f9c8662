package session

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/automoto/tilehop/assets"
	"github.com/automoto/tilehop/components"
	"github.com/automoto/tilehop/phase"
	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/automoto/tilehop/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"
)

const (
	firstMap = `{"width":3,"height":2,"tilewidth":16,"tileheight":16,
		"layers":[
			{"id":1,"name":"background","type":"tilelayer","width":3,"height":2,"data":[1,1,1,0,0,0]},
			{"id":2,"name":"solids","type":"tilelayer","width":3,"height":2,"data":[0,0,0,2,2,2]}
		],
		"tilesets":[{"firstgid":1,"source":"../tilesets/ground.json"}]}`
	secondMap = `{"width":2,"height":1,"tilewidth":16,"tileheight":16,
		"layers":[{"id":1,"name":"background","type":"tilelayer","width":2,"height":1,"data":[3,0]}],
		"tilesets":[{"firstgid":1,"source":"../tilesets/ground.json"}]}`
	groundTileset = `{"name":"ground","columns":2,"image":"../textures/ground.png",
		"imagewidth":32,"imageheight":32,"margin":0,"spacing":0,
		"tilecount":4,"tilewidth":16,"tileheight":16}`
)

func groundPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func testFS(t *testing.T, manifest string) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"levels.json":          {Data: []byte(manifest)},
		"levels/first.json":    {Data: []byte(firstMap)},
		"levels/second.json":   {Data: []byte(secondMap)},
		"tilesets/ground.json": {Data: []byte(groundTileset)},
		"textures/ground.png":  {Data: groundPNG(t)},
	}
}

const chainManifest = `[
	{"name":"first","map":"levels/first.json","next":"second"},
	{"name":"second","map":"levels/second.json"}
]`

func testOptions() Options {
	return Options{
		Manifest:   "levels.json",
		Folders:    []string{"levels", "tilesets", "textures"},
		SolidLayer: "solids",
		CellSize:   16,
		PlayerSize: math.Vec2{X: 32, Y: 32},
		StaticSolids: []leveldata.SolidRect{
			{X: 200, Y: 0, W: 100, H: 100},
			{X: 0, Y: -100, W: 400, H: 32},
		},
	}
}

type harness struct {
	t     *testing.T
	store *assets.Store
	world donburi.World
	s     *Session
	c     *phase.Controller
}

func newHarness(t *testing.T, fsys fstest.MapFS, opts Options) *harness {
	t.Helper()
	store := assets.NewStore(fsys, zap.NewNop())
	world := donburi.NewWorld()
	s, err := New(store, world, opts, zap.NewNop())
	require.NoError(t, err)
	return &harness{t: t, store: store, world: world, s: s, c: phase.NewController(s, zap.NewNop())}
}

// load ticks through Loading, waiting on the background preload between polls.
func (h *harness) load() {
	h.t.Helper()
	h.c.Tick()
	_ = h.store.Wait()
	h.c.Tick()
}

func (h *harness) count(tag donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(tag)).Count(h.world)
}

func TestSessionLevelChain(t *testing.T) {
	h := newHarness(t, testFS(t, chainManifest), testOptions())

	h.load()
	require.Equal(t, phase.Playing, h.c.State(), "err: %v", h.c.Err())

	require.NotNil(t, h.s.Registry())
	assert.Equal(t, 2, h.s.Registry().Len())
	assert.Equal(t, h.s.Registry().First(), h.s.Current())
	assert.Equal(t, 6, h.count(tags.Tile))
	assert.Equal(t, 3, h.count(tags.LevelSolid))
	assert.Len(t, h.s.Bodies().Solids(), 5)
	assert.Equal(t, uint64(1), h.s.Generation())

	level := components.Level.Get(components.Level.MustFirst(h.world))
	assert.Equal(t, "first", level.Current.Name)
	assert.Equal(t, 0, level.Index)
	assert.Equal(t, 48.0, level.Width)
	assert.Equal(t, 32.0, level.Height)

	h.c.RequestTransition()
	require.Equal(t, phase.Transitioning, h.c.State())
	assert.Zero(t, h.count(tags.Tile))
	assert.Zero(t, h.count(tags.LevelSolid))
	assert.Len(t, h.s.Bodies().Solids(), 2, "static solids survive")
	assert.Equal(t, 1, h.count(tags.Player))

	h.c.Tick()
	require.Equal(t, phase.Playing, h.c.State())
	assert.Equal(t, "second", h.s.Current().Name)
	assert.Equal(t, 1, h.count(tags.Tile))
	assert.Equal(t, uint64(2), h.s.Generation())

	components.Tile.Each(h.world, func(e *donburi.Entry) {
		tile := components.Tile.Get(e)
		assert.Equal(t, uint64(2), tile.Generation)
		assert.Equal(t, "textures/ground.png", tile.Image)
		assert.Equal(t, image.Rect(0, 16, 16, 32), tile.Atlas)
	})

	h.c.RequestTransition()
	h.c.Tick()
	assert.Equal(t, phase.Finished, h.c.State())
	assert.Zero(t, h.count(tags.Tile))

	h.c.Tick()
	assert.Equal(t, phase.Finished, h.c.State())
	assert.Equal(t, 1, h.count(tags.Player), "one player across levels")
}

func TestSessionPlayerResetsOnLevelEnter(t *testing.T) {
	opts := testOptions()
	opts.PlayerSpawn = math.Vec2{X: -40, Y: 8}
	h := newHarness(t, testFS(t, chainManifest), opts)
	h.load()

	actor := components.Actor.Get(h.s.Player()).Actor
	assert.Equal(t, opts.PlayerSpawn, actor.Position)

	actor.Position = math.Vec2{X: 300, Y: 300}
	actor.Velocity = math.Vec2{X: 4, Y: 1}
	h.c.RequestTransition()
	h.c.Tick()

	assert.Equal(t, opts.PlayerSpawn, actor.Position)
	assert.Equal(t, math.Vec2{}, actor.Velocity)
}

func TestSessionFailures(t *testing.T) {
	t.Run("missing asset folder", func(t *testing.T) {
		opts := testOptions()
		opts.Folders = append(opts.Folders, "music")
		h := newHarness(t, testFS(t, chainManifest), opts)

		h.load()

		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrAssetLoadFailure)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		h := newHarness(t, testFS(t, `{"name":"first"}`), testOptions())

		h.load()

		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrMalformedDocument)
	})

	t.Run("next names a missing level", func(t *testing.T) {
		h := newHarness(t, testFS(t, `[{"name":"first","map":"levels/first.json","next":"third"}]`), testOptions())
		h.load()
		require.Equal(t, phase.Playing, h.c.State())

		h.c.RequestTransition()
		h.c.Tick()

		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrUnresolvedReference)
	})

	t.Run("unresolved gid spawns nothing", func(t *testing.T) {
		fsys := testFS(t, chainManifest)
		fsys["levels/first.json"] = &fstest.MapFile{Data: []byte(`{"width":2,"height":1,"tilewidth":16,"tileheight":16,
			"layers":[{"type":"tilelayer","width":2,"height":1,"data":[1,9]}],
			"tilesets":[{"firstgid":1,"source":"../tilesets/ground.json"}]}`)}
		h := newHarness(t, fsys, testOptions())

		h.load()

		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrUnresolvedReference)
		assert.Zero(t, h.count(tags.Tile))
	})

	t.Run("object layer is unsupported", func(t *testing.T) {
		fsys := testFS(t, chainManifest)
		fsys["levels/first.json"] = &fstest.MapFile{Data: []byte(`{"width":1,"height":1,"tilewidth":16,"tileheight":16,
			"layers":[{"type":"objectgroup","name":"spawns","objects":[]}],
			"tilesets":[]}`)}
		h := newHarness(t, fsys, testOptions())

		h.load()

		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrUnsupportedFeature)
	})
}

func TestSessionOverlappingTilesets(t *testing.T) {
	fsys := testFS(t, chainManifest)
	fsys["tilesets/extra.json"] = &fstest.MapFile{Data: []byte(groundTileset)}
	fsys["levels/first.json"] = &fstest.MapFile{Data: []byte(`{"width":2,"height":1,"tilewidth":16,"tileheight":16,
		"layers":[{"type":"tilelayer","width":2,"height":1,"data":[1,3]}],
		"tilesets":[{"firstgid":1,"source":"../tilesets/ground.json"},{"firstgid":3,"source":"../tilesets/extra.json"}]}`)}

	t.Run("rejected by default", func(t *testing.T) {
		h := newHarness(t, fsys, testOptions())
		h.load()
		assert.Equal(t, phase.Failed, h.c.State())
		assert.ErrorIs(t, h.c.Err(), leveldata.ErrOverlappingTilesetRanges)
	})

	t.Run("allowed", func(t *testing.T) {
		opts := testOptions()
		opts.AllowOverlap = true
		h := newHarness(t, fsys, opts)
		h.load()
		assert.Equal(t, phase.Playing, h.c.State())
		assert.Equal(t, 2, h.count(tags.Tile))
	})
}

func TestNewRejectsBadGeometry(t *testing.T) {
	store := assets.NewStore(fstest.MapFS{}, zap.NewNop())

	opts := testOptions()
	opts.PlayerSize = math.Vec2{X: 0, Y: 32}
	_, err := New(store, donburi.NewWorld(), opts, zap.NewNop())
	assert.Error(t, err)

	opts = testOptions()
	opts.StaticSolids = append(opts.StaticSolids, leveldata.SolidRect{W: -1, H: 4})
	_, err = New(store, donburi.NewWorld(), opts, zap.NewNop())
	assert.Error(t, err)
}
