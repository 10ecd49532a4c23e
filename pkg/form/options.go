package form

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/request"
	"github.com/goliatone/go-studentservices/pkg/validation"
	"github.com/goliatone/go-studentservices/pkg/visibility"
)

// Option configures a Controller.
type Option func(*Controller)

// WithSchema overrides the validation schema.
func WithSchema(schema *validation.Schema) Option {
	return func(c *Controller) {
		if schema != nil {
			c.schema = schema
		}
	}
}

// WithHandler sets the terminal submit handler.
func WithHandler(handler SubmitHandler) Option {
	return func(c *Controller) {
		if handler != nil {
			c.handler = handler
		}
	}
}

// WithLogger sets the logger used by the controller and the default handler.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithEvaluator sets the evaluator for visibility rules.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(c *Controller) {
		if eval != nil {
			c.evaluator = eval
		}
	}
}

// WithRules overrides individual visibility rules. Fields not named keep
// their default rule.
func WithRules(rules visibility.Rules) Option {
	return func(c *Controller) {
		for field, rule := range rules {
			c.rules[field] = rule
		}
	}
}

// WithFormModel reads visibility rules from the form model's field metadata.
func WithFormModel(form model.FormModel) Option {
	return WithRules(RulesFromModel(form))
}

// WithInitial seeds the draft. Seeded fields are not marked touched.
func WithInitial(draft request.Draft) Option {
	return func(c *Controller) {
		c.draft = draft
	}
}

// WithClock overrides the time source stamped on submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the submission ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

func defaultID() string {
	return uuid.NewString()
}
