package openapi

import (
	"bytes"
	"context"
	"errors"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/submission"
)

// Name is the registry key of the OpenAPI renderer.
const Name = "openapi"

// SchemaName is the component name of the answer schema.
const SchemaName = "Answers"

// Renderer emits an OpenAPI 3 document whose components hold the schema a
// submission for the page must satisfy.
type Renderer struct {
	title   string
	version string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the OpenAPI renderer.
type Option func(*Renderer)

// WithInfo sets the document title and version.
func WithInfo(title, version string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
		if version != "" {
			r.version = version
		}
	}
}

// New constructs an OpenAPI renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{title: "Form answers", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/vnd.oai.openapi+json" }

// Document builds the OpenAPI document for page and validates it.
func (r *Renderer) Document(ctx context.Context, page model.Page) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   r.title,
			Version: r.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaName: openapi3.NewSchemaRef("", submission.Schema(page)),
			},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, converr.Wrap(converr.KindSerializeError, err)
	}
	return doc, nil
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := r.Document(ctx, page)
	if err != nil {
		return nil, err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, converr.Wrap(converr.KindSerializeError, err)
	}
	if opts.Compact {
		return raw, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, converr.Wrap(converr.KindSerializeError, err)
	}
	return buf.Bytes(), nil
}
