package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sheetform/pkg/converr"
)

type validatorView struct {
	Type       ValidatorType
	Text       string
	Expression string
	MinLength  *uint64
	MaxLength  *uint64
}

func viewValidators(validators []Validator) []validatorView {
	if validators == nil {
		return nil
	}
	out := make([]validatorView, len(validators))
	for i, v := range validators {
		view := validatorView{Type: v.Type(), Text: v.Text()}
		view.Expression, _ = v.Expression()
		if n, ok := v.MinLength(); ok {
			view.MinLength = ptr(n)
		}
		if n, ok := v.MaxLength(); ok {
			view.MaxLength = ptr(n)
		}
		out[i] = view
	}
	return out
}

func mustBuilder(t *testing.T, options Options) *Builder {
	t.Helper()
	b, err := New(options)
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return b
}

func TestBuilder_TextValidators(t *testing.T) {
	tests := []struct {
		name string
		raw  RawField
		want []validatorView
	}{
		{
			name: "exact length",
			raw:  RawField{Index: 1, Variant: FieldVariantText, Min: ptr[uint64](7), Max: ptr[uint64](7)},
			want: []validatorView{{
				Type:      ValidatorTypeText,
				Text:      "7文字で入力してください",
				MinLength: ptr[uint64](7),
				MaxLength: ptr[uint64](7),
			}},
		},
		{
			name: "unequal bounds emit nothing",
			raw:  RawField{Index: 1, Variant: FieldVariantText, Min: ptr[uint64](1), Max: ptr[uint64](20)},
		},
		{
			name: "digits guarded by 1..2 bounds",
			raw: RawField{
				Index:             3,
				Variant:           FieldVariantText,
				Min:               ptr[uint64](1),
				Max:               ptr[uint64](2),
				InputSpec:         ptr(InputSpecHalfWidthNumber),
				NumInputSpec:      &NumInputSpec{Min: 1, Max: 100},
				NumInputSpecError: ptr("1~99の数値を入力してください"),
			},
			want: []validatorView{
				{
					Type:       ValidatorTypeExpression,
					Text:       "1~99の数値を入力してください",
					Expression: "${field3} && ${field3} >= 1 && ${field3} < 100",
				},
				{
					Type:       ValidatorTypeExpression,
					Text:       "入力できるのは半角数字のみです",
					Expression: "${field3} && ${field3}.match(/^[0-9]+$/)",
				},
			},
		},
		{
			name: "digits skipped outside guard",
			raw: RawField{
				Index:     1,
				Variant:   FieldVariantText,
				Min:       ptr[uint64](1),
				Max:       ptr[uint64](3),
				InputSpec: ptr(InputSpecHalfWidthNumber),
			},
		},
		{
			name: "range needs its error text",
			raw: RawField{
				Index:        1,
				Variant:      FieldVariantText,
				Min:          ptr[uint64](1),
				Max:          ptr[uint64](3),
				NumInputSpec: &NumInputSpec{Min: 1, Max: 100},
			},
		},
		{
			name: "range needs both bounds",
			raw: RawField{
				Index:             1,
				Variant:           FieldVariantText,
				NumInputSpec:      &NumInputSpec{Min: 1, Max: 100},
				NumInputSpecError: ptr("1~99の数値を入力してください"),
			},
		},
		{
			name: "range with one bound",
			raw: RawField{
				Index:             1,
				Variant:           FieldVariantText,
				Max:               ptr[uint64](3),
				NumInputSpec:      &NumInputSpec{Min: 1, Max: 100},
				NumInputSpecError: ptr("1~99の数値を入力してください"),
			},
		},
		{
			name: "range with unequal bounds",
			raw: RawField{
				Index:             4,
				Variant:           FieldVariantText,
				Min:               ptr[uint64](1),
				Max:               ptr[uint64](3),
				NumInputSpec:      &NumInputSpec{Min: 0, Max: 10},
				NumInputSpecError: ptr("0~9の数値を入力してください"),
			},
			want: []validatorView{{
				Type:       ValidatorTypeExpression,
				Text:       "0~9の数値を入力してください",
				Expression: "${field4} && ${field4} >= 0 && ${field4} < 10",
			}},
		},
		{
			name: "letters ignore bounds",
			raw: RawField{
				Index:     2,
				Variant:   FieldVariantText,
				InputSpec: ptr(InputSpecHalfWidthKanji),
			},
			want: []validatorView{{
				Type:       ValidatorTypeExpression,
				Text:       "入力できるのは半角英字のみです",
				Expression: "${field2} && ${field2}.match(/^([a-zA-Z])+$/)",
			}},
		},
	}

	b := mustBuilder(t, Options{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field, err := b.Build(tc.raw)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if diff := cmp.Diff(tc.want, viewValidators(field.Validators())); diff != "" {
				t.Fatalf("validators mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder_TextAreaMinOnly(t *testing.T) {
	b := mustBuilder(t, Options{})
	field, err := b.Build(RawField{
		Index:       4,
		Variant:     FieldVariantTextArea,
		Min:         ptr[uint64](10),
		Max:         ptr[uint64](400),
		Placeholder: ptr("ご自由にお書きください"),
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []validatorView{{
		Type:      ValidatorTypeText,
		Text:      "10文字以上で入力してください",
		MinLength: ptr[uint64](10),
	}}
	if diff := cmp.Diff(want, viewValidators(field.Validators())); diff != "" {
		t.Fatalf("validators mismatch (-want +got):\n%s", diff)
	}
	if price, ok := field.PriceMax(); !ok || price != 400 {
		t.Fatalf("expected price ceiling 400, got %d (%v)", price, ok)
	}
	if text, ok := field.Caption().Placeholder(); !ok || text != "ご自由にお書きください" {
		t.Fatalf("expected placeholder caption, got %q (%v)", text, ok)
	}
}

func TestBuilder_MultiselectAnswerCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max *uint64
		want     []validatorView
	}{
		{
			name: "range",
			min:  ptr[uint64](1),
			max:  ptr[uint64](3),
			want: []validatorView{{Type: ValidatorTypeAnswerCount, Text: "選択肢は1個以上3以下", MinLength: ptr[uint64](1), MaxLength: ptr[uint64](3)}},
		},
		{
			name: "min only",
			min:  ptr[uint64](2),
			want: []validatorView{{Type: ValidatorTypeAnswerCount, Text: "選択肢は2個以上", MinLength: ptr[uint64](2)}},
		},
		{
			name: "max only",
			max:  ptr[uint64](4),
			want: []validatorView{{Type: ValidatorTypeAnswerCount, Text: "選択肢は4個以下", MaxLength: ptr[uint64](4)}},
		},
		{name: "none"},
	}

	b := mustBuilder(t, Options{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field, err := b.Build(RawField{
				Index:   1,
				Variant: FieldVariantMultiselect,
				Options: []string{"A", "B"},
				Min:     tc.min,
				Max:     tc.max,
			})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if diff := cmp.Diff(tc.want, viewValidators(field.Validators())); diff != "" {
				t.Fatalf("validators mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder_MultiselectExclusivity(t *testing.T) {
	b := mustBuilder(t, Options{})

	single, err := b.Build(RawField{
		Index:       2,
		Variant:     FieldVariantMultiselect,
		Options:     []string{"A", "B", "C"},
		Placeholder: ptr("B"),
	})
	if err != nil {
		t.Fatalf("build single: %v", err)
	}
	wantSingle := []validatorView{{
		Type:       ValidatorTypeExpression,
		Text:       "[B]が選択されています。",
		Expression: "${field2} && (${field2}.includes('B') && ${field2}.length === 1) || !${field2}.includes('B')",
	}}
	if diff := cmp.Diff(wantSingle, viewValidators(single.Validators())); diff != "" {
		t.Fatalf("single exception mismatch (-want +got):\n%s", diff)
	}
	if single.Caption().Kind() != CaptionNone {
		t.Fatalf("multiselect must not carry a caption, got %v", single.Caption().Kind())
	}

	many, err := b.Build(RawField{
		Index:       2,
		Variant:     FieldVariantMultiselect,
		Options:     []string{"A", "B", "C"},
		Placeholder: ptr("B,C"),
		Max:         ptr[uint64](2),
	})
	if err != nil {
		t.Fatalf("build many: %v", err)
	}
	wantMany := []validatorView{
		{Type: ValidatorTypeAnswerCount, Text: "選択肢は2個以下", MaxLength: ptr[uint64](2)},
		{
			Type:       ValidatorTypeExpression,
			Text:       "[B]または[C]が選択されています。",
			Expression: "${field2} && (${field2}.some(item => ['B', 'C'].includes(item)) && ${field2}.length === 1) || !${field2}.some(item => ['B', 'C'].includes(item))",
		},
	}
	if diff := cmp.Diff(wantMany, viewValidators(many.Validators())); diff != "" {
		t.Fatalf("exception set mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_PlaceholderNotInOptions(t *testing.T) {
	b := mustBuilder(t, Options{})

	raws := []RawField{
		{Index: 1, Variant: FieldVariantMultiselect, Options: []string{"A", "B"}, Placeholder: ptr("D")},
		{Index: 1, Variant: FieldVariantMultiselect, Options: []string{"A", "B"}, Placeholder: ptr("A,D"), Min: ptr[uint64](1)},
		{Index: 1, Variant: FieldVariantMultiselect, Placeholder: ptr("A")},
	}
	for _, raw := range raws {
		_, err := b.Build(raw)
		if !errors.Is(err, converr.ErrPlaceholderNotInOptions) {
			t.Fatalf("expected PlaceholderNotInOptions, got %v", err)
		}
		var convErr *converr.Error
		if !errors.As(err, &convErr) || convErr.Location == nil || convErr.Location.Field != 1 {
			t.Fatalf("expected error located at field 1, got %#v", err)
		}
	}
}

func TestBuilder_OptionsFromKey(t *testing.T) {
	b := mustBuilder(t, Options{})
	field, err := b.Build(RawField{
		Index:          6,
		Variant:        FieldVariantDropdown,
		Label:          "市区町村",
		Placeholder:    ptr("選択してください"),
		Options:        []string{"stale"},
		OptionsFromKey: ptr("field5"),
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if key, ok := field.OptionsFromKey(); !ok || key != "field5" {
		t.Fatalf("expected options_from_key field5, got %q", key)
	}
	if len(field.Options()) != 0 {
		t.Fatalf("expected no options, got %v", field.Options())
	}
	if _, ok := field.PlaceholderText(); ok {
		t.Fatalf("placeholder must be dropped when wired to another field")
	}
	if field.Caption().Kind() != CaptionNone {
		t.Fatalf("expected no caption, got %v", field.Caption().Kind())
	}
	visible, ok := field.Visible()
	if !ok || visible != "${field5} && ${field5}.length > 1" {
		t.Fatalf("unexpected visibility %q", visible)
	}
}

func TestBuilder_CaptionByVariant(t *testing.T) {
	tests := []struct {
		variant FieldVariant
		want    CaptionKind
	}{
		{FieldVariantText, CaptionPlaceholder},
		{FieldVariantTextArea, CaptionPlaceholder},
		{FieldVariantDropdown, CaptionOptions},
		{FieldVariantRadio, CaptionNone},
	}

	b := mustBuilder(t, Options{})
	for _, tc := range tests {
		field, err := b.Build(RawField{Index: 1, Variant: tc.variant, Options: []string{"x"}, Placeholder: ptr("x")})
		if err != nil {
			t.Fatalf("%s: build: %v", tc.variant, err)
		}
		if got := field.Caption().Kind(); got != tc.want {
			t.Errorf("%s: caption = %v, want %v", tc.variant, got, tc.want)
		}
		if _, ok := field.PriceMax(); ok {
			t.Errorf("%s: unexpected price ceiling", tc.variant)
		}
		if field.Validators() != nil {
			t.Errorf("%s: expected nil validators", tc.variant)
		}
	}
}

func TestBuilder_CustomMessages(t *testing.T) {
	b := mustBuilder(t, Options{Messages: Messages{ExactLength: "exactly {{ length }} characters"}})
	field, err := b.Build(RawField{Index: 1, Variant: FieldVariantText, Min: ptr[uint64](3), Max: ptr[uint64](3)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := field.Validators()[0].Text(); got != "exactly 3 characters" {
		t.Fatalf("unexpected message %q", got)
	}

	if _, err := New(Options{Messages: Messages{MinLength: "{% if %}"}}); err == nil {
		t.Fatalf("expected broken template to fail construction")
	}
}

func TestBuilder_MessagesAreNotEscaped(t *testing.T) {
	b := mustBuilder(t, Options{})
	field, err := b.Build(RawField{
		Index:       1,
		Variant:     FieldVariantMultiselect,
		Options:     []string{"<なし>", "A"},
		Placeholder: ptr("<なし>"),
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := field.Validators()[0].Text(); got != "[<なし>]が選択されています。" {
		t.Fatalf("message was escaped: %q", got)
	}
}

func TestBuilder_SanitizeText(t *testing.T) {
	raw := RawField{Index: 1, Variant: FieldVariantRadio, Label: "<b>性別</b> &amp; 年齢", Options: []string{"<i>男性</i>"}}

	plain, err := mustBuilder(t, Options{}).Build(raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plain.Label() != raw.Label {
		t.Fatalf("labels must be verbatim by default, got %q", plain.Label())
	}

	clean, err := mustBuilder(t, Options{SanitizeText: true}).Build(raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if clean.Label() != "性別 & 年齢" {
		t.Fatalf("unexpected sanitised label %q", clean.Label())
	}
	want := []OptionType{{Value: "<i>男性</i>", Label: "男性"}}
	if diff := cmp.Diff(want, clean.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_BuildPageKeepsOrder(t *testing.T) {
	b := mustBuilder(t, Options{})
	page, err := b.BuildPage([]RawField{
		{Index: 1, Variant: FieldVariantText, Label: "a"},
		{Index: 2, Variant: FieldVariantRadio, Label: "b", Options: []string{"x"}},
		{Index: 3, Variant: FieldVariantTextArea, Label: "c"},
	})
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	var names []string
	for _, f := range page.Fields() {
		names = append(names, f.Name())
	}
	if diff := cmp.Diff([]string{"field1", "field2", "field3"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := page.Field("field2"); !ok {
		t.Fatalf("expected lookup by name")
	}

	_, err = b.BuildPage([]RawField{
		{Index: 1, Variant: FieldVariantText},
		{Index: 2, Variant: FieldVariantMultiselect, Placeholder: ptr("zz")},
	})
	if !errors.Is(err, converr.ErrPlaceholderNotInOptions) {
		t.Fatalf("expected page build to abort, got %v", err)
	}
}
