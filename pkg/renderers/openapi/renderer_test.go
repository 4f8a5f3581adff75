package openapi_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-sheetform/internal/scan"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/renderers/openapi"
	"github.com/goliatone/go-sheetform/pkg/testsupport"
)

func samplePage(t *testing.T) model.Page {
	t.Helper()

	result, err := scan.New(scan.Options{}).Scan(testsupport.SampleTemplate().Grid())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	builder, err := model.NewBuilder()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	page, err := builder.BuildPage(result.Fields)
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	return page
}

func TestRenderer_RoundTripsThroughLoader(t *testing.T) {
	renderer := openapi.New(openapi.WithInfo("アンケート", "2"))
	out, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc, err := openapi3.NewLoader().LoadFromData(out)
	if err != nil {
		t.Fatalf("load rendered document: %v", err)
	}
	if err := doc.Validate(testsupport.Context()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "アンケート" || doc.Info.Version != "2" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}

	ref, ok := doc.Components.Schemas[openapi.SchemaName]
	if !ok || ref.Value == nil {
		t.Fatalf("missing %s schema", openapi.SchemaName)
	}
	if len(ref.Value.Properties) != 7 {
		t.Fatalf("expected 7 properties, got %d", len(ref.Value.Properties))
	}
	if err := ref.Value.VisitJSON(map[string]any{"field1": "x"}); err == nil {
		t.Fatalf("expected missing required answers to fail")
	}
}

func TestRenderer_Compact(t *testing.T) {
	out, err := openapi.New().Render(testsupport.Context(), samplePage(t), render.RenderOptions{Compact: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, b := range out {
		if b == '\n' {
			t.Fatalf("compact output contains newlines")
		}
	}
}
