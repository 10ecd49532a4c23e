package model

import "strconv"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleFormat    = "format"
)

// Metadata and UI hint keys shared by the builder, the UI schema decorator and
// the renderers.
const (
	MetadataVisibilityRule = "visibilityRule"
	MetadataOrder          = "order"
	HintWidget             = "widget"
	HintIcon               = "icon"
	HintIconRaw            = "iconRaw"
	HintInputType          = "inputType"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"], pattern rules keep
// the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is a selectable value for enumerated fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a generated form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in model order.
func (f FormModel) FieldNames() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}

// VisibilityRule returns the rule attached to the field, if any.
func (f Field) VisibilityRule() string {
	if rule := f.Metadata[MetadataVisibilityRule]; rule != "" {
		return rule
	}
	return f.UIHints[MetadataVisibilityRule]
}

// OptionLabel resolves the display label for an option value, falling back to
// the value itself.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// MinLength returns the minLength threshold, or zero when unset.
func (f Field) MinLength() int {
	for _, rule := range f.Validations {
		if rule.Kind != ValidationRuleMinLength {
			continue
		}
		n, err := strconv.Atoi(rule.Params["value"])
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func (f *Field) ensureUIHints() map[string]string {
	if f.UIHints == nil {
		f.UIHints = make(map[string]string)
	}
	return f.UIHints
}
