package leveldata

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="rock" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="../textures/rock.png" width="32" height="32"/>
 <tile id="1">
  <properties>
   <property name="kind" value="crystal"/>
  </properties>
 </tile>
</tileset>
`

const testCollectionTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="props" tilewidth="16" tileheight="16" tilecount="1" columns="0">
 <grid orientation="orthogonal" width="1" height="1"/>
 <tile id="0">
  <image source="../textures/crate.png" width="16" height="16"/>
 </tile>
</tileset>
`

func tmxMap(attrs, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="1" tilewidth="16" tileheight="16" ` + attrs + `>
` + body + `
</map>
`
}

const rockTilesetRef = ` <tileset firstgid="1" source="../tilesets/rock.tsx"/>
`

func tileLayer(name, csv string) string {
	return ` <layer id="1" name="` + name + `" width="2" height="1">
  <data encoding="csv">` + csv + `</data>
 </layer>
`
}

func tmxFS() fstest.MapFS {
	return fstest.MapFS{
		"tilesets/rock.tsx":  {Data: []byte(testTSX)},
		"tilesets/props.tsx": {Data: []byte(testCollectionTSX)},
		"textures/rock.png":  {Data: []byte("png")},
		"textures/crate.png": {Data: []byte("png")},

		"levels/cave.tmx": {Data: []byte(tmxMap(`infinite="0"`,
			rockTilesetRef+tileLayer("solids", "2147483650,3")))},
		"levels/chunked.tmx": {Data: []byte(tmxMap(`infinite="1"`, rockTilesetRef+
			` <layer id="1" name="solids" width="2" height="1">
  <data encoding="csv">
   <chunk x="0" y="0" width="16" height="16">0</chunk>
  </data>
 </layer>`))},
		"levels/objects.tmx": {Data: []byte(tmxMap(`infinite="0"`, rockTilesetRef+tileLayer("solids", "1,0")+
			` <objectgroup id="2" name="spawns">
  <object id="1" x="0" y="0" width="16" height="16"/>
 </objectgroup>`))},
		"levels/sky.tmx": {Data: []byte(tmxMap(`infinite="0"`, rockTilesetRef+tileLayer("solids", "1,0")+
			` <imagelayer id="2" name="sky">
  <image source="../textures/rock.png" width="32" height="32"/>
 </imagelayer>`))},
		"levels/grouped.tmx": {Data: []byte(tmxMap(`infinite="0"`, rockTilesetRef+
			` <group id="2" name="decor">
`+tileLayer("inner", "1,0")+` </group>`))},
		"levels/embedded.tmx": {Data: []byte(tmxMap(`infinite="0"`,
			` <tileset firstgid="1" name="inline" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="../textures/rock.png" width="32" height="32"/>
 </tileset>
`+tileLayer("solids", "1,0")))},
		"levels/collection.tmx": {Data: []byte(tmxMap(`infinite="0"`,
			` <tileset firstgid="1" source="../tilesets/props.tsx"/>
`+tileLayer("solids", "0,0")))},
		"levels/short.tmx":  {Data: []byte(tmxMap(`infinite="0"`, rockTilesetRef+tileLayer("solids", "1")))},
		"levels/broken.tmx": {Data: []byte(`<map width="2"`)},
	}
}

func TestLoadTMX(t *testing.T) {
	fsys := tmxFS()

	t.Run("converts layers and external tilesets", func(t *testing.T) {
		m, err := LoadLevelMap(fsys, "levels/cave.tmx")
		require.NoError(t, err)

		assert.Equal(t, 2, m.Doc.Width)
		assert.Equal(t, 16, m.Doc.TileWidth)
		require.Len(t, m.Doc.Tilesets, 1)
		assert.Equal(t, uint32(1), m.Doc.Tilesets[0].FirstGID)
		assert.Equal(t, "tilesets/rock.tsx", m.Doc.Tilesets[0].Source)

		require.Len(t, m.Doc.Layers, 1)
		layer := m.Doc.Layers[0]
		assert.Equal(t, "solids", layer.Name)
		assert.Equal(t, []uint32{2, 3}, layer.Data)
		require.Len(t, layer.Flips, 2)
		assert.True(t, layer.Flips[0].Horizontal)
		assert.False(t, layer.Flips[1].Horizontal)

		require.Len(t, m.Tilesets, 1)
		ts := m.Tilesets[0]
		assert.Equal(t, 2, ts.Columns)
		assert.Equal(t, 4, ts.TileCount)
		require.Len(t, ts.Properties[1], 1)
		assert.Equal(t, "crystal", ts.Properties[1][0].Value)
	})

	t.Run("tileset image resolves to a file in the asset tree", func(t *testing.T) {
		m, err := LoadLevelMap(fsys, "levels/cave.tmx")
		require.NoError(t, err)

		assert.Equal(t, "textures/rock.png", m.Tilesets[0].Image)
		_, err = fs.Stat(fsys, m.Tilesets[0].Image)
		assert.NoError(t, err)
	})

	t.Run("unsupported features", func(t *testing.T) {
		for name, p := range map[string]string{
			"infinite map":             "levels/chunked.tmx",
			"object layer":             "levels/objects.tmx",
			"image layer":              "levels/sky.tmx",
			"group layer":              "levels/grouped.tmx",
			"embedded tileset":         "levels/embedded.tmx",
			"image collection tileset": "levels/collection.tmx",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := LoadLevelMap(fsys, p)
				require.ErrorIs(t, err, ErrUnsupportedFeature)
				assert.NotErrorIs(t, err, ErrMalformedDocument)
			})
		}
	})

	t.Run("layer with the wrong cell count is malformed", func(t *testing.T) {
		_, err := LoadLevelMap(fsys, "levels/short.tmx")
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("truncated xml is malformed", func(t *testing.T) {
		_, err := LoadLevelMap(fsys, "levels/broken.tmx")
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("missing map is unresolved", func(t *testing.T) {
		_, err := LoadLevelMap(fsys, "levels/none.tmx")
		assert.ErrorIs(t, err, ErrUnresolvedReference)
	})
}
