package document

import (
	"bytes"
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
)

// Name is the registry key of the document renderer.
const Name = "document"

// Renderer emits the form document consumed by the form runtime:
// {"Elements": [...]} with one object per field in page order.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the document renderer.
type Option func(*Renderer)

// WithIndent overrides the two space indentation. An empty indent produces
// compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs a document renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes page. Expressions are emitted verbatim: HTML escaping is off.
func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("document: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent := r.indent; indent != "" && !opts.Compact {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(toPage(page)); err != nil {
		return nil, converr.Wrap(converr.KindSerializeError, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
