package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers draw pages with. Names
// are resolved against the engine's template source; RenderString compiles
// the given content on the fly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
