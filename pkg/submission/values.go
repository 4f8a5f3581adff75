package submission

import "strings"

// normalize copies answers dropping unanswered entries. Selections are kept
// as []string so the expression evaluator sees plain lists.
func normalize(answers map[string]any) map[string]any {
	out := make(map[string]any, len(answers))
	for key, value := range answers {
		if normalized, ok := normalizeValue(value); ok {
			out[key] = normalized
		}
	}
	return out
}

func normalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return v, true
	case []string:
		if len(v) == 0 {
			return nil, false
		}
		return append([]string(nil), v...), true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return v, true
			}
			out = append(out, s)
		}
		return out, true
	default:
		return v, true
	}
}

// toJSON converts normalized answers into the shapes schema validation
// expects.
func toJSON(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = toJSONValue(value)
	}
	return out
}

func toJSONValue(value any) any {
	if list, ok := value.([]string); ok {
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	}
	return value
}
