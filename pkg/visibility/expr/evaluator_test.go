package expr

import (
	"testing"

	"github.com/goliatone/go-sheetform/pkg/visibility"
)

func values(v map[string]any) visibility.Context {
	return visibility.Context{Values: v}
}

func TestEvaluatorRangeExpression(t *testing.T) {
	t.Parallel()

	eval := New()
	rule := "${field3} && ${field3} >= 1 && ${field3} < 100"

	tests := []struct {
		value any
		want  bool
	}{
		{"1", true},
		{"99", true},
		{"100", false},
		{"0", false},
		{"abc", false},
		{float64(42), true},
	}
	for _, tc := range tests {
		got, err := eval.Eval("field3", rule, values(map[string]any{"field3": tc.value}))
		if err != nil {
			t.Fatalf("Eval(%v): %v", tc.value, err)
		}
		if got != tc.want {
			t.Errorf("Eval(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestEvaluatorPatterns(t *testing.T) {
	t.Parallel()

	eval := New()
	digits := "${field1} && ${field1}.match(/^[0-9]+$/)"
	letters := "${field1} && ${field1}.match(/^([a-zA-Z])+$/)"

	cases := []struct {
		rule  string
		value string
		want  bool
	}{
		{digits, "12", true},
		{digits, "1a", false},
		{digits, "１２", false},
		{letters, "Tokyo", true},
		{letters, "Tokyo1", false},
	}
	for _, tc := range cases {
		got, err := eval.Eval("field1", tc.rule, values(map[string]any{"field1": tc.value}))
		if err != nil {
			t.Fatalf("Eval(%q, %q): %v", tc.rule, tc.value, err)
		}
		if got != tc.want {
			t.Errorf("Eval(%q, %q) = %v, want %v", tc.rule, tc.value, got, tc.want)
		}
	}
}

func TestEvaluatorExclusiveSelection(t *testing.T) {
	t.Parallel()

	eval := New()
	single := "${field2} && (${field2}.includes('B') && ${field2}.length === 1) || !${field2}.includes('B')"
	set := "${field2} && (${field2}.some(item => ['B', 'C'].includes(item)) && ${field2}.length === 1) || !${field2}.some(item => ['B', 'C'].includes(item))"

	cases := []struct {
		rule      string
		selection []string
		want      bool
	}{
		{single, []string{"B"}, true},
		{single, []string{"A"}, true},
		{single, []string{"A", "C"}, true},
		{single, []string{"A", "B"}, false},
		{single, nil, true},
		{set, []string{"C"}, true},
		{set, []string{"A"}, true},
		{set, []string{"B", "C"}, false},
		{set, []string{"A", "C"}, false},
	}
	for _, tc := range cases {
		ctx := values(map[string]any{})
		if tc.selection != nil {
			ctx.Values["field2"] = tc.selection
		}
		got, err := eval.Eval("field2", tc.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%v): %v", tc.selection, err)
		}
		if got != tc.want {
			t.Errorf("Eval(%q, %v) = %v, want %v", tc.rule, tc.selection, got, tc.want)
		}
	}
}

func TestEvaluatorVisibility(t *testing.T) {
	t.Parallel()

	eval := New()
	rule := "${field5} && ${field5}.length > 1"

	ok, err := eval.Eval("field6", rule, visibility.Context{Extras: map[string]any{"field5": "東京都"}})
	if err != nil || !ok {
		t.Fatalf("expected visible from extras, got %v, %v", ok, err)
	}
	ok, err = eval.Eval("field6", rule, values(nil))
	if err != nil || ok {
		t.Fatalf("expected hidden without a value, got %v, %v", ok, err)
	}
	ok, err = eval.Eval("field6", rule, values(map[string]any{"field5": "a"}))
	if err != nil || ok {
		t.Fatalf("expected hidden for a single character, got %v, %v", ok, err)
	}
}

func TestEvaluatorEmptyRule(t *testing.T) {
	t.Parallel()

	ok, err := New().Eval("field1", "   ", visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("expected empty rule to be true, got %v, %v", ok, err)
	}
}

func TestEvaluatorErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	for _, rule := range []string{
		"${field1",
		"${field1} & 1",
		"${field1} = 1",
		"${field1}.unknown",
		"${field1}.match('x')",
		"${field1}.some(x => true)",
		"item",
		"(${field1}",
		"${field1}.match(/[/)",
	} {
		if _, err := eval.Eval("field1", rule, values(map[string]any{"field1": "x"})); err == nil {
			t.Errorf("expected error for %q", rule)
		}
	}
}
