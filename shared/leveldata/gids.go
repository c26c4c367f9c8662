package leveldata

import "fmt"

// TileRef locates a gid inside one of the map's tilesets.
type TileRef struct {
	Tileset int    // index into LevelMap.Tilesets
	Local   uint32 // id within that tileset
}

// Overlap records two tilesets that both claim a gid range.
type Overlap struct {
	Earlier, Later int    // tileset indices in document order
	First, Last    uint32 // shared gids, inclusive
}

func (o Overlap) String() string {
	return fmt.Sprintf("tilesets %d and %d share gids %d..%d", o.Earlier, o.Later, o.First, o.Last)
}

// GidTable maps every gid a map can use to its tileset and local id.
type GidTable struct {
	entries  map[uint32]TileRef
	overlaps []Overlap
}

// BuildGidTable registers [first_gid, first_gid+tile_count) for every tileset in document
// order. Overlapping ranges are an error unless allowOverlap is set, in which case the
// later tileset wins the shared ids and the overlaps are kept for reporting.
func BuildGidTable(refs []TilesetRef, tilesets []*TilesetDescriptor, allowOverlap bool) (*GidTable, error) {
	const op = "build gid table"

	if len(refs) != len(tilesets) {
		return nil, malformed(op, "", "%d tileset references but %d tilesets", len(refs), len(tilesets))
	}

	total := 0
	for i, ts := range tilesets {
		if ts.TileCount < 0 {
			return nil, malformed(op, refs[i].Source, "negative tilecount %d", ts.TileCount)
		}
		if uint64(refs[i].FirstGID)+uint64(ts.TileCount) > uint64(gidMask)+1 {
			return nil, malformed(op, refs[i].Source,
				"firstgid %d + tilecount %d runs past the largest gid %d", refs[i].FirstGID, ts.TileCount, gidMask)
		}
		total += ts.TileCount
	}

	table := &GidTable{entries: make(map[uint32]TileRef, total)}
	for i, ref := range refs {
		n := uint32(tilesets[i].TileCount)
		for j := 0; j < i; j++ {
			if o, ok := rangeOverlap(refs[j].FirstGID, uint32(tilesets[j].TileCount), ref.FirstGID, n); ok {
				o.Earlier, o.Later = j, i
				table.overlaps = append(table.overlaps, o)
			}
		}
		for local := uint32(0); local < n; local++ {
			table.entries[ref.FirstGID+local] = TileRef{Tileset: i, Local: local}
		}
	}

	if len(table.overlaps) > 0 && !allowOverlap {
		return nil, &Error{
			Kind: ErrOverlappingTilesetRanges,
			Op:   op,
			Path: refs[table.overlaps[0].Later].Source,
			Err:  fmt.Errorf("%s", table.overlaps[0]),
		}
	}

	return table, nil
}

func rangeOverlap(aFirst, aCount, bFirst, bCount uint32) (Overlap, bool) {
	if aCount == 0 || bCount == 0 {
		return Overlap{}, false
	}
	aLast := aFirst + aCount - 1
	bLast := bFirst + bCount - 1
	lo := max(aFirst, bFirst)
	hi := min(aLast, bLast)
	if lo > hi {
		return Overlap{}, false
	}
	return Overlap{First: lo, Last: hi}, true
}

// Resolve returns the tileset and local id for gid.
func (t *GidTable) Resolve(gid uint32) (TileRef, error) {
	ref, ok := t.entries[gid]
	if !ok {
		return TileRef{}, unresolved("resolve gid", "", "gid %d is outside every tileset range", gid)
	}
	return ref, nil
}

// Overlaps lists the shared ranges that were resolved last-write-wins.
func (t *GidTable) Overlaps() []Overlap {
	return t.overlaps
}

// Len is the number of registered gids.
func (t *GidTable) Len() int {
	return len(t.entries)
}
