package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"path"
	"testing"
	"testing/fstest"

	"github.com/automoto/tilehop/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"levels.json":          {Data: []byte(`[{"name":"meadow","map":"levels/meadow.json"}]`)},
		"levels/meadow.json":   {Data: []byte(`{}`)},
		"tilesets/ground.json": {Data: []byte(`{}`)},
		"textures/ground.png":  {Data: pngBytes(t, 64, 32)},
	}
}

var sampleFolders = []string{"levels", "tilesets", "textures"}

// gatedFS holds file reads until the gate is closed.
type gatedFS struct {
	files fstest.MapFS
	gate  chan struct{}
}

func (g gatedFS) Open(name string) (fs.File, error) {
	if path.Ext(name) != "" {
		<-g.gate
	}
	return g.files.Open(name)
}

func TestStorePreload(t *testing.T) {
	s := NewStore(sampleFS(t), zap.NewNop())

	status, err := s.Status()
	assert.Equal(t, StatusIdle, status)
	assert.NoError(t, err)

	s.Preload(sampleFolders, "levels.json")
	require.NoError(t, s.Wait())

	status, err = s.Status()
	assert.Equal(t, StatusLoaded, status)
	assert.NoError(t, err)

	loaded, total := s.Progress()
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, loaded)

	img, err := s.Image("textures/ground.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())

	data, err := fs.ReadFile(s, "levels.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "meadow")
}

func TestStatusDoesNotBlock(t *testing.T) {
	gate := make(chan struct{})
	s := NewStore(gatedFS{files: sampleFS(t), gate: gate}, zap.NewNop())

	s.Preload(sampleFolders)
	status, _ := s.Status()
	assert.Equal(t, StatusPending, status)

	close(gate)
	require.NoError(t, s.Wait())
	status, _ = s.Status()
	assert.Equal(t, StatusLoaded, status)
}

func TestStorePreloadFailures(t *testing.T) {
	t.Run("undecodable texture", func(t *testing.T) {
		fsys := sampleFS(t)
		fsys["textures/broken.png"] = &fstest.MapFile{Data: []byte("not a png")}
		s := NewStore(fsys, zap.NewNop())

		s.Preload(sampleFolders)
		err := s.Wait()

		require.Error(t, err)
		assert.ErrorIs(t, err, leveldata.ErrAssetLoadFailure)
		assert.Contains(t, err.Error(), "textures/broken.png")
		status, statusErr := s.Status()
		assert.Equal(t, StatusFailed, status)
		assert.Equal(t, err, statusErr)
	})

	t.Run("missing folder", func(t *testing.T) {
		s := NewStore(sampleFS(t), zap.NewNop())
		s.Preload([]string{"levels", "music"})
		assert.ErrorIs(t, s.Wait(), leveldata.ErrAssetLoadFailure)
	})

	t.Run("missing file", func(t *testing.T) {
		s := NewStore(sampleFS(t), zap.NewNop())
		s.Preload(nil, "levels.yaml")
		assert.ErrorIs(t, s.Wait(), leveldata.ErrAssetLoadFailure)
	})
}

func TestPreloadOnlyOnce(t *testing.T) {
	s := NewStore(sampleFS(t), zap.NewNop())
	s.Preload([]string{"textures"})
	s.Preload([]string{"levels", "music"})

	require.NoError(t, s.Wait())
	_, total := s.Progress()
	assert.Equal(t, 1, total)
}

func TestWaitBeforePreload(t *testing.T) {
	s := NewStore(sampleFS(t), nil)
	assert.Error(t, s.Wait())
}

func TestImageWithoutPreload(t *testing.T) {
	s := NewStore(sampleFS(t), zap.NewNop())

	img, err := s.Image("textures/ground.png")
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, err = s.Image("levels.json")
	assert.ErrorIs(t, err, leveldata.ErrAssetLoadFailure)

	_, err = s.Image("textures/none.png")
	assert.ErrorIs(t, err, leveldata.ErrAssetLoadFailure)
}

func TestEmbeddedData(t *testing.T) {
	fsys := Embedded()

	data, err := fs.ReadFile(fsys, "levels.json")
	require.NoError(t, err)

	reg, err := leveldata.ParseManifest(data)
	require.NoError(t, err)
	for _, level := range reg.Levels() {
		m, err := leveldata.LoadLevelMap(fsys, level.Map)
		require.NoError(t, err, level.Name)

		table, err := leveldata.BuildGidTable(m.Doc.Tilesets, m.Tilesets, false)
		require.NoError(t, err, level.Name)
		_, err = leveldata.BuildPlacements(m, table, leveldata.Slicer{})
		require.NoError(t, err, level.Name)
	}
}
