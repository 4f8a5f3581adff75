package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.Page, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "openapi"}, stubRenderer{name: "document"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if diff := cmp.Diff([]string{"document", "openapi"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	renderer, err := registry.Lookup("document")
	if err != nil || renderer.Name() != "document" {
		t.Fatalf("lookup document: %v", err)
	}

	_, err = registry.Lookup("html")
	if !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if !strings.Contains(err.Error(), "document") {
		t.Fatalf("expected known names in error, got %v", err)
	}
}

func TestRegistry_RejectsBatch(t *testing.T) {
	tests := map[string][]render.Renderer{
		"duplicate of known name": {stubRenderer{name: "tui"}, stubRenderer{name: "document"}},
		"duplicate within batch":  {stubRenderer{name: "tui"}, stubRenderer{name: "tui"}},
		"nil renderer":            {stubRenderer{name: "tui"}, nil},
		"unnamed renderer":        {stubRenderer{name: "tui"}, stubRenderer{}},
	}

	for name, batch := range tests {
		t.Run(name, func(t *testing.T) {
			registry := render.NewRegistry()
			if err := registry.Register(stubRenderer{name: "document"}); err != nil {
				t.Fatalf("register: %v", err)
			}
			if err := registry.Register(batch...); err == nil {
				t.Fatalf("expected batch to be rejected")
			}
			if diff := cmp.Diff([]string{"document"}, registry.Names()); diff != "" {
				t.Fatalf("rejected batch leaked into registry (-want +got):\n%s", diff)
			}
		})
	}
}
