package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/pkg/request"
	"github.com/goliatone/go-studentservices/pkg/validation"
	"github.com/goliatone/go-studentservices/pkg/visibility"
	"github.com/goliatone/go-studentservices/pkg/visibility/expr"
)

// FieldState is the derived per-field view used by renderers. Error is only
// populated when the message should be shown: after the field was touched or
// the form was submitted.
type FieldState struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
	Invalid bool   `json:"invalid"`
	Visible bool   `json:"visible"`
	// Required is false for fields the schema lets stay empty.
	Required bool   `json:"required"`
	Error    string `json:"error,omitempty"`
}

type listener struct {
	field string
	fn    func(field, value string)
}

// Controller holds a Submission Draft and its derived state. It is safe for
// concurrent use.
type Controller struct {
	mu          sync.RWMutex
	draft       request.Draft
	touched     map[string]bool
	result      validation.Result
	submitted   bool
	submitCount int

	listeners  map[int]listener
	listenerID int

	schema    *validation.Schema
	handler   SubmitHandler
	evaluator visibility.Evaluator
	rules     visibility.Rules
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// New builds a controller with an empty draft, the default schema, the
// default visibility rules and a LogHandler.
func New(options ...Option) *Controller {
	c := &Controller{
		touched:   make(map[string]bool),
		listeners: make(map[int]listener),
		rules:     DefaultRules(),
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     defaultID,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.schema == nil {
		c.schema = validation.New()
	}
	if c.evaluator == nil {
		c.evaluator = expr.New()
	}
	if c.handler == nil {
		c.handler = LogHandler(c.logger)
	}
	c.result = c.schema.Validate(c.draft)
	return c
}

// SetField stores value, marks the field touched and revalidates the whole
// draft. Listeners registered with Subscribe run after the lock is released.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	if err := c.draft.Set(name, value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.touched[name] = true
	c.result = c.schema.Validate(c.draft)
	valid := c.result.Valid()
	notify := c.listenersFor(name)
	c.mu.Unlock()

	c.logger.Debug("form field changed",
		zap.String("field", name),
		zap.Bool("draft_valid", valid),
	)
	for _, fn := range notify {
		fn(name, value)
	}
	return nil
}

// Touch marks a field touched without changing it, so its error is shown.
func (c *Controller) Touch(name string) error {
	if !request.IsField(name) {
		return fmt.Errorf("%w: %q", request.ErrUnknownField, name)
	}
	c.mu.Lock()
	c.touched[name] = true
	c.mu.Unlock()
	return nil
}

// Submit validates the draft. On failure it returns a *ValidationError with
// every current message and does not call the handler. On success the handler
// runs once with the draft; the draft is kept either way.
func (c *Controller) Submit(ctx context.Context) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}

	c.mu.Lock()
	c.submitted = true
	c.submitCount++
	c.result = c.schema.Validate(c.draft)
	if !c.result.Valid() {
		errs := copyErrors(c.result.Errors)
		fields := c.result.Fields()
		c.mu.Unlock()
		c.logger.Info("form submit rejected", zap.Strings("fields", fields))
		return Submission{}, &ValidationError{Fields: errs}
	}
	sub := Submission{
		ID:         c.newID(),
		ReceivedAt: c.now().UTC(),
		Request:    c.draft,
	}
	c.mu.Unlock()

	if err := c.handler.Handle(ctx, sub); err != nil {
		c.logger.Warn("form submit handler failed", zap.String("id", sub.ID), zap.Error(err))
		return sub, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return sub, nil
}

// Watch returns the live value of a field, or "" for unknown names.
func (c *Controller) Watch(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, _ := c.draft.Get(name)
	return value
}

// Subscribe registers fn to run after field changes. An empty field name
// subscribes to every field. The returned func removes the subscription.
func (c *Controller) Subscribe(field string, fn func(field, value string)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.listenerID++
	id := c.listenerID
	c.listeners[id] = listener{field: field, fn: fn}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() request.Draft {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.draft
}

// Values returns the draft as a name to value map.
func (c *Controller) Values() map[string]any {
	return c.Draft().Values()
}

// Valid reports whether the draft passed its last validation.
func (c *Controller) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result.Valid()
}

// Errors returns every current message, shown or not.
func (c *Controller) Errors() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyErrors(c.result.Errors)
}

// VisibleErrors returns only the messages that should be displayed.
func (c *Controller) VisibleErrors() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string)
	for name, msg := range c.result.Errors {
		if c.submitted || c.touched[name] {
			out[name] = msg
		}
	}
	return out
}

// FieldState returns the derived state of one field.
func (c *Controller) FieldState(name string) (FieldState, error) {
	if !request.IsField(name) {
		return FieldState{}, fmt.Errorf("%w: %q", request.ErrUnknownField, name)
	}
	hidden := c.hidden()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fieldStateLocked(name, hidden), nil
}

// FieldStates returns the state of every field in form order.
func (c *Controller) FieldStates() []FieldState {
	hidden := c.hidden()

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]FieldState, 0, len(request.FieldNames()))
	for _, name := range request.FieldNames() {
		out = append(out, c.fieldStateLocked(name, hidden))
	}
	return out
}

// Panel derives the visible conditional block from the current inquiry type.
func (c *Controller) Panel() Panel {
	return panelFor(c.hidden())
}

// VisibleFields lists visible field names in form order.
func (c *Controller) VisibleFields() []string {
	hidden := c.hidden()
	var out []string
	for _, name := range request.FieldNames() {
		if !hidden[name] {
			out = append(out, name)
		}
	}
	return out
}

// Touched reports whether the field has been changed or touched.
func (c *Controller) Touched(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touched[name]
}

// Submitted reports whether Submit has been called since the last Reset.
func (c *Controller) Submitted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.submitted
}

// SubmitCount counts Submit calls since the last Reset.
func (c *Controller) SubmitCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.submitCount
}

// Reset empties the draft and clears touched and submitted state. Submit
// never calls it.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = request.Draft{}
	c.touched = make(map[string]bool)
	c.submitted = false
	c.submitCount = 0
	c.result = c.schema.Validate(c.draft)
}

func (c *Controller) hidden() map[string]bool {
	values := c.Values()
	hidden, err := c.rules.Hidden(c.evaluator, visibility.Context{Values: values})
	if err != nil {
		c.logger.Warn("visibility rule failed", zap.Error(err))
	}
	return hidden
}

func (c *Controller) fieldStateLocked(name string, hidden map[string]bool) FieldState {
	value, _ := c.draft.Get(name)
	msg, invalid := c.result.Errors[name]
	state := FieldState{
		Name:     name,
		Value:    value,
		Touched:  c.touched[name],
		Invalid:  invalid,
		Visible:  !hidden[name],
		Required: c.schema.Required(name),
	}
	if invalid && (c.submitted || state.Touched) {
		state.Error = msg
	}
	return state
}

func (c *Controller) listenersFor(field string) []func(string, string) {
	var out []func(string, string)
	for id := 1; id <= c.listenerID; id++ {
		l, ok := c.listeners[id]
		if !ok {
			continue
		}
		if l.field == "" || l.field == field {
			out = append(out, l.fn)
		}
	}
	return out
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
