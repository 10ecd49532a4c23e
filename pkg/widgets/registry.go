package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-studentservices/pkg/model"
)

// Built-in widget identifiers understood by the renderers.
const (
	WidgetSelect   = "select"
	WidgetTextarea = "textarea"
	WidgetEmail    = "email"
	WidgetTel      = "tel"
	WidgetNumber   = "number"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher under name. The latest registration of a name wins
// when priorities tie.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget UI hint is
// honoured before matchers run.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.UIHints[model.HintWidget]); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, filling the widget hint of every field
// that does not already carry one.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for idx := range form.Fields {
		field := &form.Fields[idx]
		if strings.TrimSpace(field.UIHints[model.HintWidget]) != "" {
			continue
		}
		widget, ok := r.Resolve(*field)
		if !ok {
			continue
		}
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		field.UIHints[model.HintWidget] = widget
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field model.Field) bool {
		return len(field.Options) > 0 || len(field.Enum) > 0
	})

	r.Register(WidgetEmail, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && strings.EqualFold(field.Format, "email")
	})

	r.Register(WidgetTel, 70, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "tel" || format == "phone"
	})

	r.Register(WidgetTextarea, 60, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "textarea" || format == "multiline"
	})

	r.Register(WidgetNumber, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber
	})
}
