package envgen

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

// CoreTemplates exposes the built-in core template tree so callers can reuse
// or extend it without going through the renderer.
func CoreTemplates() fs.FS {
	fsys, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return fsys
}
