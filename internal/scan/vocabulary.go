package scan

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-sheetform/internal/model"
	"github.com/goliatone/go-sheetform/pkg/converr"
)

// Subject identifies which field attribute a template row supplies.
type Subject uint8

const (
	SubjectPaging Subject = iota + 1
	SubjectRequired
	SubjectDisplayConditionFirst
	SubjectDisplayConditionSecond
	SubjectDisplayConditionThird
	SubjectType
	SubjectMax
	SubjectMin
	SubjectLabel
	SubjectPlaceholder
	SubjectInputSpec
	SubjectNumInputSpec
	SubjectNumInputSpecError
	SubjectOptions
)

// Template tokens.
const (
	optionsPrefix     = "プルダウン"
	fieldNumberPrefix = "field"

	requiredTrue  = "表示(必須)"
	requiredFalse = "表示(任意)"
)

var subjectNames = map[Subject]string{
	SubjectPaging:                 "Paging",
	SubjectRequired:               "Required",
	SubjectDisplayConditionFirst:  "DisplayConditionFirst",
	SubjectDisplayConditionSecond: "DisplayConditionSecond",
	SubjectDisplayConditionThird:  "DisplayConditionThird",
	SubjectType:                   "Type",
	SubjectMax:                    "Max",
	SubjectMin:                    "Min",
	SubjectLabel:                  "Label",
	SubjectPlaceholder:            "Placeholder",
	SubjectInputSpec:              "InputSpec",
	SubjectNumInputSpec:           "NumInputSpec",
	SubjectNumInputSpecError:      "NumInputSpecError",
	SubjectOptions:                "Options",
}

func (s Subject) String() string {
	if name, ok := subjectNames[s]; ok {
		return name
	}
	return "Subject(" + strconv.Itoa(int(s)) + ")"
}

// ParseSubject classifies a row label. Matching is exact except for the
// options subject, which accepts any label starting with its token.
func ParseSubject(label string) (Subject, error) {
	switch label {
	case "ページング":
		return SubjectPaging, nil
	case "表示":
		return SubjectRequired, nil
	case "表示条件1":
		return SubjectDisplayConditionFirst, nil
	case "表示条件2":
		return SubjectDisplayConditionSecond, nil
	case "表示条件3":
		return SubjectDisplayConditionThird, nil
	case "タイプ":
		return SubjectType, nil
	case "最大":
		return SubjectMax, nil
	case "最小":
		return SubjectMin, nil
	case "ラベル":
		return SubjectLabel, nil
	case "プレースホルダ":
		return SubjectPlaceholder, nil
	case "入力指定":
		return SubjectInputSpec, nil
	case "数値入力指定":
		return SubjectNumInputSpec, nil
	case "数値入力指定エラー":
		return SubjectNumInputSpecError, nil
	}
	if strings.HasPrefix(label, optionsPrefix) {
		return SubjectOptions, nil
	}
	return 0, converr.New(converr.KindIncorrectSubject, label)
}

// ParseRequired maps the required-flag tokens.
func ParseRequired(s string) (bool, error) {
	switch s {
	case requiredTrue:
		return true, nil
	case requiredFalse:
		return false, nil
	default:
		return false, converr.New(converr.KindIncorrectRequired, s)
	}
}

// ParseVariant maps the field type tokens.
func ParseVariant(s string) (model.FieldVariant, error) {
	switch s {
	case "プルダウン":
		return model.FieldVariantDropdown, nil
	case "テキスト一行":
		return model.FieldVariantText, nil
	case "テキストエリア":
		return model.FieldVariantTextArea, nil
	case "マルチセレクト":
		return model.FieldVariantMultiselect, nil
	case "ラジオボタン":
		return model.FieldVariantRadio, nil
	default:
		return "", converr.New(converr.KindIncorrectFieldVariant, s)
	}
}

// ParseInputSpec maps the input specification tokens.
func ParseInputSpec(s string) (model.InputSpec, error) {
	switch s {
	case "半角数字":
		return model.InputSpecHalfWidthNumber, nil
	case "半角英字":
		return model.InputSpecHalfWidthKanji, nil
	default:
		return "", converr.New(converr.KindIncorrectInputSpecification, s)
	}
}

// ParseNumInputSpec parses "<min>~<max>" into a numeric range.
func ParseNumInputSpec(s string) (model.NumInputSpec, error) {
	parts := strings.Split(s, "~")
	if len(parts) != 2 {
		return model.NumInputSpec{}, converr.New(converr.KindIncorrectNumInputSpecification, s)
	}
	min, errMin := strconv.ParseUint(parts[0], 10, 32)
	max, errMax := strconv.ParseUint(parts[1], 10, 32)
	if errMin != nil || errMax != nil {
		return model.NumInputSpec{}, converr.New(converr.KindIncorrectNumInputSpecification, s)
	}
	return model.NumInputSpec{Min: uint32(min), Max: uint32(max)}, nil
}
