package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// LoadLevelMap reads the map at mapPath and every tileset it references. It takes an
// fs.FS so callers can pass the asset store, embed.FS or os.DirFS. Maps ending in .tmx
// go through go-tiled; everything else is read as Tiled JSON.
func LoadLevelMap(fsys fs.FS, mapPath string) (*LevelMap, error) {
	if strings.EqualFold(path.Ext(mapPath), ".tmx") {
		return LoadTMX(fsys, mapPath)
	}

	data, err := readDocument(fsys, mapPath)
	if err != nil {
		return nil, err
	}
	doc, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}

	m := &LevelMap{Path: mapPath, Doc: doc}
	for i, ref := range doc.Tilesets {
		tsPath := ResolveRef(fsys, mapPath, ref.Source)
		doc.Tilesets[i].Source = tsPath

		tsData, err := readDocument(fsys, tsPath)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", mapPath, err)
		}
		ts, err := ParseTileset(tsData)
		if err != nil {
			return nil, fmt.Errorf("tileset %s: %w", tsPath, err)
		}
		ts.Image = ResolveRef(fsys, tsPath, ts.Image)
		m.Tilesets = append(m.Tilesets, ts)
	}

	return m, nil
}

// ResolveRef resolves ref the way Tiled writes it, relative to the directory of the
// document that contains it. When nothing exists there it falls back to ref taken from
// the asset root with any leading "./" removed.
func ResolveRef(fsys fs.FS, docPath, ref string) string {
	relative := path.Clean(path.Join(path.Dir(docPath), ref))
	if _, err := fs.Stat(fsys, relative); err == nil {
		return relative
	}

	rooted := path.Clean(strings.TrimPrefix(ref, "./"))
	if fs.ValidPath(rooted) {
		if _, err := fs.Stat(fsys, rooted); err == nil {
			return rooted
		}
	}

	return relative
}

func readDocument(fsys fs.FS, p string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, p)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, &Error{Kind: ErrUnresolvedReference, Op: "read document", Path: p, Err: err}
	default:
		return nil, AssetLoadError(p, err)
	}
}
