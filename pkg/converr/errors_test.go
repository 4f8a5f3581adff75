package converr

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(KindIncorrectSubject, "備考"), `Wrong subject format "備考"`},
		{New(KindNoWorksheet, ""), "No worksheet in selected Xlsx file"},
		{New(KindExpectedString, ""), "Expected string, found something else"},
		{New(KindExpectedInt, "float 1.5"), "Expected whole number, found something else (float 1.5)"},
		{New(KindPlaceholderNotInOptions, `"D"`), `Placeholder for multiselect not in options ("D")`},
		{
			New(KindIncorrectRequired, "x").At(Location{Field: 3, Row: 6, Column: 5}),
			`Wrong required format "x" at field 3, row 7, column F`,
		},
		{
			New(KindUnparseableCell, "").At(Location{Field: 0, Row: -1, Column: 27}),
			"Could not parse cell at column AB",
		},
	}

	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("scan: %w", New(KindExpectedInt, "boom").At(Location{Field: 1}))

	if !errors.Is(err, ErrExpectedInt) {
		t.Fatalf("expected errors.Is to match ErrExpectedInt")
	}
	if errors.Is(err, ErrExpectedString) {
		t.Fatalf("did not expect ErrExpectedString to match")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindExpectedInt {
		t.Fatalf("KindOf = %q, %v", kind, ok)
	}
	if kind.Category() != CategoryCoercion {
		t.Fatalf("category = %q", kind.Category())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	_, cause := strconv.ParseUint("abc", 10, 64)
	err := Wrap(KindExpectedInt, cause)
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
}

func TestAtKeepsFirstLocation(t *testing.T) {
	err := New(KindUnparseableCell, "").
		At(Location{Field: 2, Row: 1, Column: 3}).
		At(Location{Field: 9, Row: 9, Column: 9})
	if err.Location.Field != 2 {
		t.Fatalf("expected the innermost location to win, got %+v", *err.Location)
	}
}

func TestCategories(t *testing.T) {
	tests := map[Kind]Category{
		KindXlsxError:               CategoryContainer,
		KindIncorrectSubject:        CategoryClassification,
		KindIncorrectFieldVariant:   CategoryCoercion,
		KindPlaceholderNotInOptions: CategorySynthesis,
		KindIOError:                 CategoryOutput,
	}
	for kind, want := range tests {
		if got := kind.Category(); got != want {
			t.Errorf("%s.Category() = %q, want %q", kind, got, want)
		}
	}
}
