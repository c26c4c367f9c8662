package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:data
var dataFS embed.FS

// Embedded returns the bundled game data rooted at its top directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
