package main

import (
	"embed"
	"io/fs"
)

//go:embed configs static
var assets embed.FS

func embeddedConfigs() fs.FS {
	sub, err := fs.Sub(assets, "configs")
	if err != nil {
		panic(err)
	}
	return sub
}
