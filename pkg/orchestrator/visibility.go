package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/visibility"
)

// hiddenFields evaluates the visibility rules declared on the model against
// the prefilled values.
func hiddenFields(fm model.FormModel, evaluator visibility.Evaluator, values map[string]string) (map[string]bool, error) {
	rules := form.RulesFromModel(fm)
	if len(rules) == 0 || evaluator == nil {
		return map[string]bool{}, nil
	}

	ctx := visibility.Context{Values: make(map[string]any, len(values))}
	for key, value := range values {
		ctx.Values[key] = value
	}

	hidden, err := rules.Hidden(evaluator, ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: apply visibility: %w", err)
	}
	return hidden, nil
}
