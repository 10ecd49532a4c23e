package uischema

import "strings"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
	icons      map[string]string
}

// Operation describes the UI schema overrides for a specific OpenAPI operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures the heading copy plus action buttons.
type FormConfig struct {
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Actions  []ActionConfig    `json:"actions" yaml:"actions"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
	UIHints  map[string]string `json:"uiHints" yaml:"uiHints"`
}

// ActionConfig serialises call-to-action buttons rendered alongside the form.
type ActionConfig struct {
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// FieldConfig customises how a single field is presented.
type FieldConfig struct {
	Order          *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label          string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder    string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Icon           string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconRaw        string            `json:"iconRaw,omitempty" yaml:"iconRaw,omitempty"`
	Widget         string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Options        map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	VisibilityRule string            `json:"visibilityRule,omitempty" yaml:"visibilityRule,omitempty"`
	UIHints        map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OriginalPath   string            `json:"-" yaml:"-"`
}

// Submit returns the first submit action, if any.
func (f FormConfig) Submit() (ActionConfig, bool) {
	for _, action := range f.Actions {
		if action.Type == "submit" {
			return action, true
		}
	}
	return ActionConfig{}, false
}

// NormalizeFieldPath trims surrounding whitespace and stray dots from a field
// key.
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	for strings.Contains(trimmed, "..") {
		trimmed = strings.ReplaceAll(trimmed, "..", ".")
	}
	return strings.Trim(trimmed, ".")
}
