package tui

// State tracks collected answers keyed by question key.
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled answers.
func NewState(prefill map[string]any) *State {
	return &State{values: cloneValues(prefill)}
}

// Values returns the current answer map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Get returns the answer for name.
func (s *State) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set stores an answer. Blank answers remove the entry.
func (s *State) Set(name string, value any) {
	if s == nil {
		return
	}
	if blank(value) {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}

// Delete drops the answer for name.
func (s *State) Delete(name string) {
	if s == nil {
		return
	}
	delete(s.values, name)
}

func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		switch typed := v.(type) {
		case []string:
			out[k] = append([]string(nil), typed...)
		case []any:
			out[k] = append([]any(nil), typed...)
		default:
			out[k] = typed
		}
	}
	return out
}
