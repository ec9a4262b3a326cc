// Package web embeds the HTML pages served for non-API errors.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var files embed.FS

// Templates is rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
