package model

import (
	"fmt"
	"strings"
)

// The expression strings below are an output contract consumed by the form
// renderer. Their textual form must not change.

func rangeExpression(field string, spec NumInputSpec) string {
	return fmt.Sprintf("${%[1]s} && ${%[1]s} >= %[2]d && ${%[1]s} < %[3]d", field, spec.Min, spec.Max)
}

func digitsExpression(field string) string {
	return fmt.Sprintf("${%[1]s} && ${%[1]s}.match(/^[0-9]+$/)", field)
}

func lettersExpression(field string) string {
	return fmt.Sprintf("${%[1]s} && ${%[1]s}.match(/^([a-zA-Z])+$/)", field)
}

func exclusiveExpression(field, exception string) string {
	return fmt.Sprintf(
		"${%[1]s} && (${%[1]s}.includes('%[2]s') && ${%[1]s}.length === 1) || !${%[1]s}.includes('%[2]s')",
		field, exception,
	)
}

func exclusiveSetExpression(field string, exceptions []string) string {
	quoted := make([]string, len(exceptions))
	for i, exc := range exceptions {
		quoted[i] = "'" + exc + "'"
	}
	set := strings.Join(quoted, ", ")
	return fmt.Sprintf(
		"${%[1]s} && (${%[1]s}.some(item => [%[2]s].includes(item)) && ${%[1]s}.length === 1) || !${%[1]s}.some(item => [%[2]s].includes(item))",
		field, set,
	)
}

func visibleExpression(key string) string {
	return fmt.Sprintf("${%[1]s} && ${%[1]s}.length > 1", key)
}
