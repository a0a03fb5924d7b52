package render

import (
	"context"

	"github.com/goliatone/go-reportforms/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML page,
// terminal session output, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
