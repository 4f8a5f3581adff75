package visibility

// Evaluator decides whether a generated expression holds for a set of
// answers. The same expressions drive field visibility and expression
// validators.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds answers keyed by
// question key (string for free text and single choice, []string for
// multiselect). Extras allows callers to inject additional lookups such as
// defaults from another system.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}
