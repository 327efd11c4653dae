package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var assets embed.FS

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		log.Fatalf("embedded %s assets unavailable: %v", dir, err)
	}
	return sub
}

// StaticFS returns the embedded static assets (stylesheets, images).
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the embedded page templates.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}
