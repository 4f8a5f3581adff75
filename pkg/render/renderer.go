package render

import (
	"context"

	"github.com/goliatone/go-sheetform/pkg/model"
)

// Renderer converts a Page into a byte representation (document JSON, schema,
// collected answers).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
