package leveldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTileset(name string, columns, count int) *TilesetDescriptor {
	return &TilesetDescriptor{
		Name:       name,
		Columns:    columns,
		TileCount:  count,
		TileWidth:  16,
		TileHeight: 16,
		Image:      "textures/" + name + ".png",
	}
}

func TestBuildGidTable(t *testing.T) {
	refs := []TilesetRef{{FirstGID: 1, Source: "a.json"}, {FirstGID: 17, Source: "b.json"}}
	tilesets := []*TilesetDescriptor{testTileset("a", 4, 16), testTileset("b", 2, 4)}

	table, err := BuildGidTable(refs, tilesets, false)
	require.NoError(t, err)
	assert.Equal(t, 20, table.Len())
	assert.Empty(t, table.Overlaps())

	t.Run("resolves every gid in each range", func(t *testing.T) {
		for gid := uint32(1); gid <= 16; gid++ {
			ref, err := table.Resolve(gid)
			require.NoError(t, err)
			assert.Equal(t, TileRef{Tileset: 0, Local: gid - 1}, ref)
		}
		for gid := uint32(17); gid <= 20; gid++ {
			ref, err := table.Resolve(gid)
			require.NoError(t, err)
			assert.Equal(t, TileRef{Tileset: 1, Local: gid - 17}, ref)
		}
	})

	t.Run("gids outside every range are unresolved", func(t *testing.T) {
		for _, gid := range []uint32{0, 21, 1000} {
			_, err := table.Resolve(gid)
			assert.ErrorIs(t, err, ErrUnresolvedReference, "gid %d", gid)
		}
	})
}

func TestBuildGidTableGap(t *testing.T) {
	refs := []TilesetRef{{FirstGID: 1, Source: "a.json"}, {FirstGID: 100, Source: "b.json"}}
	tilesets := []*TilesetDescriptor{testTileset("a", 2, 4), testTileset("b", 2, 4)}

	table, err := BuildGidTable(refs, tilesets, false)
	require.NoError(t, err)

	_, err = table.Resolve(50)
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	ref, err := table.Resolve(101)
	require.NoError(t, err)
	assert.Equal(t, TileRef{Tileset: 1, Local: 1}, ref)
}

func TestBuildGidTableOverlap(t *testing.T) {
	refs := []TilesetRef{{FirstGID: 1, Source: "a.json"}, {FirstGID: 3, Source: "b.json"}}
	tilesets := []*TilesetDescriptor{testTileset("a", 2, 4), testTileset("b", 2, 4)}

	t.Run("rejected by default", func(t *testing.T) {
		_, err := BuildGidTable(refs, tilesets, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOverlappingTilesetRanges)
	})

	t.Run("later tileset wins when allowed", func(t *testing.T) {
		table, err := BuildGidTable(refs, tilesets, true)
		require.NoError(t, err)

		require.Len(t, table.Overlaps(), 1)
		assert.Equal(t, Overlap{Earlier: 0, Later: 1, First: 3, Last: 4}, table.Overlaps()[0])

		ref, err := table.Resolve(2)
		require.NoError(t, err)
		assert.Equal(t, TileRef{Tileset: 0, Local: 1}, ref)

		ref, err = table.Resolve(3)
		require.NoError(t, err)
		assert.Equal(t, TileRef{Tileset: 1, Local: 0}, ref)
	})
}

func TestBuildGidTableCountMismatch(t *testing.T) {
	_, err := BuildGidTable([]TilesetRef{{FirstGID: 1}}, nil, false)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestBuildGidTableRangePastLargestGid(t *testing.T) {
	t.Run("wrapping range is malformed", func(t *testing.T) {
		_, err := BuildGidTable([]TilesetRef{{FirstGID: 4294967290, Source: "far.json"}},
			[]*TilesetDescriptor{testTileset("far", 4, 16)}, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("range ending on the largest gid is accepted", func(t *testing.T) {
		table, err := BuildGidTable([]TilesetRef{{FirstGID: 0x0FFFFFF0, Source: "top.json"}},
			[]*TilesetDescriptor{testTileset("top", 4, 16)}, false)
		require.NoError(t, err)

		ref, err := table.Resolve(0x0FFFFFFF)
		require.NoError(t, err)
		assert.Equal(t, TileRef{Tileset: 0, Local: 15}, ref)

		_, err = table.Resolve(3)
		assert.ErrorIs(t, err, ErrUnresolvedReference)
	})

	t.Run("one past the largest gid is malformed", func(t *testing.T) {
		_, err := BuildGidTable([]TilesetRef{{FirstGID: 0x0FFFFFF1, Source: "top.json"}},
			[]*TilesetDescriptor{testTileset("top", 4, 16)}, false)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}
