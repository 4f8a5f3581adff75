package document_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-sheetform/internal/scan"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/renderers/document"
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

func TestRenderer_SampleGolden(t *testing.T) {
	renderer := document.New()
	out, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "sample_document.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	renderer := document.New()
	first, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte identical output across runs")
	}
}

func TestRenderer_EmptyPageAndCompact(t *testing.T) {
	out, err := document.New().Render(testsupport.Context(), model.NewPage(nil), render.RenderOptions{Compact: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"Elements":[]}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRenderer_DoesNotEscapeExpressions(t *testing.T) {
	out, err := document.New(document.WithIndent("")).Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Contains(out, []byte(`\u0026`)) || !bytes.Contains(out, []byte("${field5} && ${field5}.length > 1")) {
		t.Fatalf("expressions must be emitted verbatim: %s", out)
	}
}
