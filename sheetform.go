package sheetform

import (
	"context"

	"github.com/goliatone/go-sheetform/internal/sheet/xlsx"
	"github.com/goliatone/go-sheetform/pkg/orchestrator"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// RenderOptions describes per-request data renderers can use, such as
// prefilled answers for the terminal preview.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers driving the pipeline by
// hand.
type Request = orchestrator.Request

// NewReader constructs the excelize backed workbook reader while keeping the
// concrete type hidden from consumers.
func NewReader(options ...sheet.ReaderOption) sheet.Reader {
	return xlsx.New(sheet.NewReaderOptions(options...))
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Convert reads the workbook behind source and renders it with the named
// renderer ("document" when empty). It is the simplest entry point for
// callers that just want the form document.
func Convert(ctx context.Context, source sheet.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Convert(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// ConvertGrid renders an in-memory worksheet, bypassing the reader.
func ConvertGrid(ctx context.Context, grid sheet.Grid, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Convert(ctx, orchestrator.Request{
		Grid:     &grid,
		Renderer: rendererName,
	})
}
