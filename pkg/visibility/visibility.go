package visibility

import (
	"fmt"
	"sort"
)

// Evaluator determines whether a field should be visible based on a rule
// string and the current form values.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the live draft values;
// Extras lets callers inject data that is not part of the draft.
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

// Rules maps a field name to the rule that must hold for it to be shown.
// Fields without a rule are always visible.
type Rules map[string]string

// Hidden evaluates every rule against ctx and returns the set of fields whose
// rule evaluated to false. Evaluation errors are returned with the offending
// field; the field is treated as hidden.
func (r Rules) Hidden(eval Evaluator, ctx Context) (map[string]bool, error) {
	hidden := make(map[string]bool)
	if len(r) == 0 {
		return hidden, nil
	}

	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	var firstErr error
	for _, name := range names {
		ok, err := eval.Eval(name, r[name], ctx)
		if err != nil {
			hidden[name] = true
			if firstErr == nil {
				firstErr = fmt.Errorf("visibility: field %q: %w", name, err)
			}
			continue
		}
		if !ok {
			hidden[name] = true
		}
	}
	return hidden, firstErr
}
