package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-sheetform/internal/scan"
	"github.com/goliatone/go-sheetform/internal/sheet/xlsx"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/renderers/document"
	"github.com/goliatone/go-sheetform/pkg/renderers/openapi"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

const defaultRendererName = document.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithReader injects a custom workbook reader.
func WithReader(reader sheet.Reader) Option {
	return func(o *Orchestrator) {
		o.reader = reader
	}
}

// WithBuilder injects a custom field model builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithMaxFields overrides the field-count safety cap.
func WithMaxFields(n int) Option {
	return func(o *Orchestrator) {
		o.maxFields = n
	}
}

// WithSheet selects the worksheet the default reader decodes.
func WithSheet(name string) Option {
	return func(o *Orchestrator) {
		o.readerOptions = append(o.readerOptions, sheet.WithSheet(name))
	}
}

// WithFileSystem backs fs.FS sources for the default reader.
func WithFileSystem(files fs.FS) Option {
	return func(o *Orchestrator) {
		o.readerOptions = append(o.readerOptions, sheet.WithFileSystem(files))
	}
}

// WithTransformer registers a Transformer that rewrites scanned fields before
// the model is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from workbook to rendered output.
// Missing dependencies fall back to the built-in implementations: the excelize
// reader, the default builder and a registry holding the document and openapi
// renderers.
type Orchestrator struct {
	reader          sheet.Reader
	readerOptions   []sheet.ReaderOption
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	maxFields       int
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		maxFields:       scan.DefaultMaxFields,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.reader == nil {
		o.reader = xlsx.New(sheet.NewReaderOptions(o.readerOptions...))
	}
	if o.builder == nil {
		builder, err := model.NewBuilder()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default builder: %w", err)
			return
		}
		o.builder = builder
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := o.registry.Register(document.New(), openapi.New()); err != nil {
			o.initialiseErr = err
			return
		}
	}
}

// Request describes one conversion.
type Request struct {
	// Source identifies the workbook. Optional when Grid is supplied.
	Source sheet.Source

	// Grid bypasses the reader when the caller already holds the worksheet.
	Grid *sheet.Grid

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions for the renderer.
	RenderOptions render.RenderOptions
}

// Page runs the pipeline up to the built field model.
func (o *Orchestrator) Page(ctx context.Context, req Request) (model.Page, error) {
	if ctx == nil {
		return model.Page{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Page{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.Page{}, err
	}

	grid, err := o.resolveGrid(ctx, req)
	if err != nil {
		return model.Page{}, err
	}

	result, err := scan.New(scan.Options{MaxFields: o.maxFields}).Scan(grid)
	if err != nil {
		return model.Page{}, fmt.Errorf("orchestrator: scan: %w", err)
	}
	if result.Capped {
		o.logger.Warn("field cap reached without a terminating block",
			zap.String("source", sourceName(req)),
			zap.Int("max_fields", o.maxFields),
		)
	}

	fields := result.Fields
	if o.transformer != nil {
		fields, err = o.transformer.Transform(ctx, fields)
		if err != nil {
			return model.Page{}, fmt.Errorf("orchestrator: transform: %w", err)
		}
	}

	page, err := o.builder.BuildPage(fields)
	if err != nil {
		return model.Page{}, fmt.Errorf("orchestrator: build page: %w", err)
	}
	return page, nil
}

// Convert executes read → scan → build → render and returns the rendered
// bytes. Any failure yields nil output.
func (o *Orchestrator) Convert(ctx context.Context, req Request) ([]byte, error) {
	started := time.Now()

	page, err := o.Page(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := o.Render(ctx, page, req.Renderer, req.RenderOptions)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("converted workbook",
		zap.String("source", sourceName(req)),
		zap.Int("fields", page.Len()),
		zap.String("renderer", o.rendererName(req.Renderer)),
		zap.Duration("duration", time.Since(started)),
	)
	return output, nil
}

// Render hands an already built page to the named renderer, or the default
// one when name is empty.
func (o *Orchestrator) Render(ctx context.Context, page model.Page, name string, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry so hosts can add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveGrid(ctx context.Context, req Request) (sheet.Grid, error) {
	if req.Grid != nil {
		return *req.Grid, nil
	}
	if req.Source == nil {
		return sheet.Grid{}, errors.New("orchestrator: source or grid is required")
	}
	grid, err := o.reader.Read(ctx, req.Source)
	if err != nil {
		return sheet.Grid{}, fmt.Errorf("orchestrator: read workbook: %w", err)
	}
	return grid, nil
}

func (o *Orchestrator) rendererName(name string) string {
	if name == "" {
		return o.defaultRenderer
	}
	return name
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := o.rendererName(name)
	renderer, err := o.registry.Lookup(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func sourceName(req Request) string {
	switch {
	case req.Source != nil:
		return req.Source.Location()
	case req.Grid != nil:
		return req.Grid.Name
	default:
		return ""
	}
}
