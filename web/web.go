// Package web embeds the raffle UI assets into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// GetTemplatesFS returns the HTML templates rooted at templates/
func GetTemplatesFS() fs.FS {
	return mustSub(templatesFS, "templates")
}

// GetStaticFS returns the CSS and JS assets rooted at static/
func GetStaticFS() fs.FS {
	return mustSub(staticFS, "static")
}

// mustSub re-roots an embedded tree. The paths are compile-time constants,
// so a failure here means a broken build.
func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
