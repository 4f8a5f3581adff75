package converr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates conversion failures. Values are stable identifiers that
// hosts can switch on without parsing messages.
type Kind string

const (
	KindNoWorksheet                    Kind = "NoWorksheet"
	KindReadError                      Kind = "ReadError"
	KindXlsxError                      Kind = "XlsxError"
	KindIncorrectSubject               Kind = "IncorrectSubject"
	KindIncorrectFieldVariant          Kind = "IncorrectFieldVariant"
	KindIncorrectRequired              Kind = "IncorrectRequired"
	KindIncorrectInputSpecification    Kind = "IncorrectInputSpecification"
	KindIncorrectNumInputSpecification Kind = "IncorrectNumInputSpecification"
	KindExpectedString                 Kind = "ExpectedString"
	KindExpectedInt                    Kind = "ExpectedInt"
	KindExpectedIntOrString            Kind = "ExpectedIntOrString"
	KindUnparseableFieldNumber         Kind = "UnparseableFieldNumber"
	KindUnparseableCell                Kind = "UnparseableCell"
	KindPlaceholderNotInOptions        Kind = "PlaceholderNotInOptions"
	KindMessageTemplate                Kind = "MessageTemplate"
	KindSerializeError                 Kind = "SerializeError"
	KindIOError                        Kind = "IOError"
)

// Category groups kinds by the pipeline stage that produced them.
type Category string

const (
	CategoryContainer      Category = "container"
	CategoryClassification Category = "classification"
	CategoryCoercion       Category = "coercion"
	CategorySynthesis      Category = "synthesis"
	CategoryOutput         Category = "output"
)

// Category reports the stage a kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindNoWorksheet, KindReadError, KindXlsxError:
		return CategoryContainer
	case KindIncorrectSubject:
		return CategoryClassification
	case KindPlaceholderNotInOptions, KindMessageTemplate:
		return CategorySynthesis
	case KindSerializeError, KindIOError:
		return CategoryOutput
	default:
		return CategoryCoercion
	}
}

// Sentinels for errors.Is matching. Comparison is by Kind only.
var (
	ErrNoWorksheet                    = &Error{Kind: KindNoWorksheet}
	ErrReadError                      = &Error{Kind: KindReadError}
	ErrXlsxError                      = &Error{Kind: KindXlsxError}
	ErrIncorrectSubject               = &Error{Kind: KindIncorrectSubject}
	ErrIncorrectFieldVariant          = &Error{Kind: KindIncorrectFieldVariant}
	ErrIncorrectRequired              = &Error{Kind: KindIncorrectRequired}
	ErrIncorrectInputSpecification    = &Error{Kind: KindIncorrectInputSpecification}
	ErrIncorrectNumInputSpecification = &Error{Kind: KindIncorrectNumInputSpecification}
	ErrExpectedString                 = &Error{Kind: KindExpectedString}
	ErrExpectedInt                    = &Error{Kind: KindExpectedInt}
	ErrExpectedIntOrString            = &Error{Kind: KindExpectedIntOrString}
	ErrUnparseableFieldNumber         = &Error{Kind: KindUnparseableFieldNumber}
	ErrUnparseableCell                = &Error{Kind: KindUnparseableCell}
	ErrPlaceholderNotInOptions        = &Error{Kind: KindPlaceholderNotInOptions}
	ErrMessageTemplate                = &Error{Kind: KindMessageTemplate}
	ErrSerializeError                 = &Error{Kind: KindSerializeError}
	ErrIOError                        = &Error{Kind: KindIOError}
)

// Location pins an error to the template grid. Field is the 1-based field
// index, Row and Column are 0-based grid coordinates. A negative value means
// the coordinate is unknown.
type Location struct {
	Field  int
	Row    int
	Column int
}

func (l Location) String() string {
	var parts []string
	if l.Field > 0 {
		parts = append(parts, fmt.Sprintf("field %d", l.Field))
	}
	if l.Row >= 0 {
		parts = append(parts, fmt.Sprintf("row %d", l.Row+1))
	}
	if l.Column >= 0 {
		parts = append(parts, "column "+columnName(l.Column))
	}
	return strings.Join(parts, ", ")
}

// Error is the single terminal error value produced by a conversion.
type Error struct {
	Kind     Kind
	Detail   string
	Location *Location
	Err      error
}

// New creates an error of the given kind carrying a diagnostic detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap creates an error of the given kind around an underlying cause. The
// cause's message becomes the detail.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return New(kind, "")
	}
	return &Error{Kind: kind, Detail: err.Error(), Err: err}
}

// At returns a copy of e pinned to loc. An existing location is kept.
func (e *Error) At(loc Location) *Error {
	if e == nil {
		return nil
	}
	out := *e
	if out.Location == nil {
		out.Location = &loc
	}
	return &out
}

func (e *Error) Error() string {
	if e == nil {
		return "converr: <nil>"
	}
	msg := e.message()
	if e.Location != nil {
		if loc := e.Location.String(); loc != "" {
			msg += " at " + loc
		}
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNoWorksheet:
		return "No worksheet in selected Xlsx file"
	case KindReadError:
		return "ReadError: " + e.Detail
	case KindXlsxError:
		return "XlsxError: " + e.Detail
	case KindIncorrectSubject:
		return fmt.Sprintf("Wrong subject format %q", e.Detail)
	case KindIncorrectFieldVariant:
		return fmt.Sprintf("Wrong field type %q", e.Detail)
	case KindIncorrectRequired:
		return fmt.Sprintf("Wrong required format %q", e.Detail)
	case KindIncorrectInputSpecification:
		return fmt.Sprintf("Wrong input specification format %q", e.Detail)
	case KindIncorrectNumInputSpecification:
		return fmt.Sprintf("Wrong number input specification format %q", e.Detail)
	case KindExpectedString:
		return withDetail("Expected string, found something else", e.Detail)
	case KindExpectedInt:
		return withDetail("Expected whole number, found something else", e.Detail)
	case KindExpectedIntOrString:
		return withDetail("Expected whole number or string, found something else", e.Detail)
	case KindUnparseableFieldNumber:
		return withDetail("Couldn't parse string to get field number", e.Detail)
	case KindUnparseableCell:
		return withDetail("Could not parse cell", e.Detail)
	case KindPlaceholderNotInOptions:
		return withDetail("Placeholder for multiselect not in options", e.Detail)
	case KindMessageTemplate:
		return "Could not render validator message: " + e.Detail
	case KindSerializeError:
		return "Error while trying to serialize: " + e.Detail
	case KindIOError:
		return "IO Error: " + e.Detail
	default:
		return withDetail(string(e.Kind), e.Detail)
	}
}

func withDetail(msg, detail string) string {
	if detail == "" {
		return msg
	}
	return fmt.Sprintf("%s (%s)", msg, detail)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the package sentinels work with
// errors.Is regardless of detail or location.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind from the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var convErr *Error
	if errors.As(err, &convErr) && convErr != nil {
		return convErr.Kind, true
	}
	return "", false
}

func columnName(col int) string {
	n := col + 1
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}
