package expr

import (
	"strings"
	"sync"

	"github.com/goliatone/go-studentservices/pkg/visibility"
)

// Evaluator is a small visibility rule evaluator.
//
// Supported syntax:
//   - truthiness: `inquiryType`
//   - comparisons: `inquiryType == "complaint"`, `program != 'llm'`, `n == 3`
//   - composition: `a == "x" || b == "y"`, `!(a == "x") && b`
//
// Identifiers resolve against visibility.Context.Values, or
// visibility.Context.Extras with the `extras.` prefix. Compiled rules are
// cached, so an Evaluator should be shared.
type Evaluator struct {
	cache sync.Map // rule -> node
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator with an empty rule cache.
func New() *Evaluator { return &Evaluator{} }

// Eval compiles (or reuses) rule and evaluates it against ctx. An empty rule
// is always visible.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	compiled, err := e.compile(rule)
	if err != nil {
		return false, err
	}
	if compiled == nil {
		return true, nil
	}
	return compiled.eval(ctx)
}

// Check parses rule without evaluating it and reports syntax errors.
func (e *Evaluator) Check(rule string) error {
	_, err := e.compile(rule)
	return err
}

func (e *Evaluator) compile(rule string) (node, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	if cached, ok := e.cache.Load(trimmed); ok {
		return cached.(node), nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	compiled, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	e.cache.Store(trimmed, compiled)
	return compiled, nil
}
