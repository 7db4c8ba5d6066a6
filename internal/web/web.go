// Package web embeds the single-page client so the binary serves the whole
// site without a separate frontend deployment.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the embedded client. The app is a single index.html that
// switches views in the DOM, so plain file serving is enough.
func Handler() http.Handler {
	content, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// Unreachable: the embedded tree always contains "static".
		panic(err)
	}
	return http.FileServer(http.FS(content))
}
