package submission_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/submission"
	"github.com/goliatone/go-sheetform/pkg/visibility"
)

func ptr[T any](v T) *T { return &v }

func samplePage(t *testing.T) model.Page {
	t.Helper()
	builder, err := model.NewBuilder()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	page, err := builder.BuildPage([]model.RawField{
		{Index: 1, Required: true, Variant: model.FieldVariantText, Label: "コード", Min: ptr(uint64(3)), Max: ptr(uint64(3))},
		{Index: 2, Required: true, Variant: model.FieldVariantRadio, Label: "回答", Options: []string{"はい", "いいえ"}},
		{
			Index:             3,
			Variant:           model.FieldVariantText,
			Label:             "年齢",
			Min:               ptr(uint64(1)),
			Max:               ptr(uint64(2)),
			InputSpec:         ptr(model.InputSpecHalfWidthNumber),
			NumInputSpec:      &model.NumInputSpec{Min: 1, Max: 100},
			NumInputSpecError: ptr("1から100の間で入力してください"),
		},
		{
			Index:       4,
			Required:    true,
			Variant:     model.FieldVariantMultiselect,
			Label:       "分野",
			Min:         ptr(uint64(1)),
			Max:         ptr(uint64(2)),
			Placeholder: ptr("なし"),
			Options:     []string{"音楽", "映画", "なし"},
		},
		{Index: 5, Required: true, Variant: model.FieldVariantDropdown, Label: "詳細", OptionsFromKey: ptr("field2")},
	})
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	return page
}

func validatorText(t *testing.T, page model.Page, name string, typ model.ValidatorType) []string {
	t.Helper()
	field, ok := page.Field(name)
	if !ok {
		t.Fatalf("missing field %s", name)
	}
	var out []string
	for _, v := range field.Validators() {
		if v.Type() == typ {
			out = append(out, v.Text())
		}
	}
	return out
}

func TestSchema(t *testing.T) {
	schema := submission.Schema(samplePage(t))

	if diff := cmp.Diff([]string{"field1", "field2", "field4"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	code := schema.Properties["field1"].Value
	if code.MinLength != 3 || code.MaxLength == nil || *code.MaxLength != 3 {
		t.Fatalf("unexpected length bounds %d/%v", code.MinLength, code.MaxLength)
	}
	if code.Title != "コード" {
		t.Fatalf("title = %q", code.Title)
	}

	answer := schema.Properties["field2"].Value
	if diff := cmp.Diff([]any{"はい", "いいえ"}, answer.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	if got := schema.Properties["field3"].Value.Pattern; got != "^[0-9]+$" {
		t.Fatalf("pattern = %q", got)
	}

	topics := schema.Properties["field4"].Value
	if !topics.Type.Is("array") {
		t.Fatalf("expected array schema, got %v", topics.Type)
	}
	if topics.MinItems != 1 || topics.MaxItems == nil || *topics.MaxItems != 2 {
		t.Fatalf("unexpected item bounds %d/%v", topics.MinItems, topics.MaxItems)
	}
	if len(topics.Items.Value.Enum) != 3 {
		t.Fatalf("expected item enum, got %v", topics.Items.Value.Enum)
	}

	if len(schema.Properties["field5"].Value.Enum) != 0 {
		t.Fatalf("options borrowed from another field must not be enumerated")
	}
}

func TestValidate_Accepts(t *testing.T) {
	result := submission.Validate(samplePage(t), map[string]any{
		"field1": "abc",
		"field2": "はい",
		"field3": "42",
		"field4": []string{"なし"},
		"field5": "詳細",
	})
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Issues)
	}
}

func TestValidate_ReportsInPageOrder(t *testing.T) {
	page := samplePage(t)
	result := submission.Validate(page, map[string]any{
		"field1": "ab",
		"field3": "",
		"field4": []any{"音楽", "なし"},
	})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	var fields []string
	messages := map[string][]string{}
	for _, issue := range result.Issues {
		if len(fields) == 0 || fields[len(fields)-1] != issue.Field {
			fields = append(fields, issue.Field)
		}
		messages[issue.Field] = append(messages[issue.Field], issue.Message)
	}

	if diff := cmp.Diff([]string{"field1", "field2", "field4"}, fields); diff != "" {
		t.Fatalf("issue order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(validatorText(t, page, "field1", model.ValidatorTypeText), messages["field1"]); diff != "" {
		t.Fatalf("field1 messages (-want +got):\n%s", diff)
	}
	if got := messages["field2"]; len(got) != 1 || !strings.Contains(got[0], "field2") {
		t.Fatalf("field2 messages = %v", got)
	}
	exclusive := validatorText(t, page, "field4", model.ValidatorTypeExpression)
	if diff := cmp.Diff(exclusive, messages["field4"]); diff != "" {
		t.Fatalf("field4 messages (-want +got):\n%s", diff)
	}
}

func TestValidate_ExpressionAndPatternDeduplicated(t *testing.T) {
	page := samplePage(t)
	result := submission.Validate(page, map[string]any{
		"field1": "abc",
		"field2": "はい",
		"field3": "abc",
		"field4": []string{"音楽"},
		"field5": "詳細",
	})

	var got []string
	for _, issue := range result.Issues {
		if issue.Field != "field3" {
			t.Fatalf("unexpected issue %+v", issue)
		}
		got = append(got, issue.Message)
	}
	want := validatorText(t, page, "field3", model.ValidatorTypeExpression)
	if len(got) != len(want) {
		t.Fatalf("messages = %v, want each of %v once", got, want)
	}
	for _, msg := range want {
		if !contains(got, msg) {
			t.Fatalf("missing message %q in %v", msg, got)
		}
	}
}

func TestValidate_VisibilityGatesRequired(t *testing.T) {
	page := samplePage(t)
	base := map[string]any{
		"field1": "abc",
		"field4": []string{"映画"},
	}

	result := submission.Validate(page, base)
	for _, issue := range result.Issues {
		if issue.Field == "field5" {
			t.Fatalf("hidden field reported: %+v", issue)
		}
	}

	base["field2"] = "はい"
	result = submission.Validate(page, base)
	if result.Valid || len(result.Issues) != 1 || result.Issues[0].Field != "field5" {
		t.Fatalf("expected a missing field5 issue, got %+v", result.Issues)
	}
}

func TestValidateField(t *testing.T) {
	page := samplePage(t)
	v := submission.New(page)

	if issues := v.ValidateField("field2", "たぶん", nil); len(issues) != 1 || issues[0].Field != "field2" {
		t.Fatalf("expected enum issue, got %+v", issues)
	}
	if issues := v.ValidateField("field3", "", nil); issues != nil {
		t.Fatalf("optional blank answer should pass, got %+v", issues)
	}
	if issues := v.ValidateField("field3", "150", nil); len(issues) != 1 || issues[0].Message != "1から100の間で入力してください" {
		t.Fatalf("expected range issue, got %+v", issues)
	}
	if issues := v.ValidateField("field5", "", nil); issues != nil {
		t.Fatalf("hidden field should pass, got %+v", issues)
	}
	if issues := v.ValidateField("field5", "", map[string]any{"field2": "いいえ"}); len(issues) != 1 {
		t.Fatalf("expected required issue, got %+v", issues)
	}
	if issues := v.ValidateField("field9", "x", nil); len(issues) != 1 {
		t.Fatalf("expected unknown field issue")
	}
}

func TestWithEvaluator(t *testing.T) {
	calls := 0
	v := submission.New(samplePage(t), submission.WithEvaluator(visibility.EvaluatorFunc(
		func(string, string, visibility.Context) (bool, error) {
			calls++
			return true, nil
		},
	)))
	v.ValidateField("field3", "abc", nil)
	if calls == 0 {
		t.Fatalf("custom evaluator not used")
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
