package reportforms

import (
	"io/fs"

	"github.com/goliatone/go-reportforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS holds the editor stylesheet and script served under
// vanilla.AssetsPrefix.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(reportforms.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// UISchemaFS holds the default field overlays, one document per kind.
func UISchemaFS() fs.FS {
	return uischema.EmbeddedFS()
}
