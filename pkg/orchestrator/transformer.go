package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-sheetform/pkg/model"
)

// Transformer rewrites the scanned fields before the model builder derives
// captions, validators and visibility from them.
type Transformer interface {
	Transform(ctx context.Context, fields []model.RawField) ([]model.RawField, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, fields []model.RawField) ([]model.RawField, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, fields []model.RawField) ([]model.RawField, error) {
	if fn == nil {
		return fields, nil
	}
	return fn(ctx, fields)
}

// JSONPresetTransformer applies declarative overrides loaded from JSON, keyed
// by question key:
//
//	{
//	  "fields": {
//	    "field3": {"label": "年齢", "required": true, "options": ["A", "B"]}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string   `json:"label"`
	Placeholder *string  `json:"placeholder"`
	Required    *bool    `json:"required"`
	Options     []string `json:"options"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches. Patching an unknown question key fails.
func (t *JSONPresetTransformer) Transform(ctx context.Context, fields []model.RawField) ([]model.RawField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(fields))
	for i, field := range fields {
		byName[model.FieldName(field.Index)] = i
	}

	out := append([]model.RawField(nil), fields...)
	for name, patch := range t.document.Fields {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("json preset transformer: field %q not found", name)
		}
		applyFieldPatch(&out[idx], patch)
	}
	return out, nil
}

func applyFieldPatch(field *model.RawField, patch jsonFieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != nil {
		placeholder := *patch.Placeholder
		field.Placeholder = &placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil {
		field.Options = append([]string(nil), patch.Options...)
	}
}
