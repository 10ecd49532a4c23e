package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Only flat object
// request bodies are supported; fields are ordered by name until a decorator
// applies an explicit order.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    make(map[string]string),
	}
	if op.Summary != "" {
		form.Metadata["summary"] = op.Summary
	}
	if op.Description != "" {
		form.Metadata["description"] = op.Description
	}

	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return FormModel{}, fmt.Errorf("model builder: operation %q request body must be an object, got %q", op.ID, body.Type)
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := body.Properties[name]
		if prop.Type == "object" || len(prop.Properties) > 0 {
			return FormModel{}, fmt.Errorf("model builder: nested object field %q is not supported", name)
		}
		form.Fields = append(form.Fields, b.fieldFromPrimitive(name, prop, body.IsRequired(name)))
	}

	if len(form.Metadata) == 0 {
		form.Metadata = nil
	}
	return form, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) Field {
	label := schema.Title
	if label == "" {
		label = b.opts.Labeler(name)
	}
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       label,
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
		for _, value := range schema.Enum {
			str := fmt.Sprint(value)
			field.Options = append(field.Options, Option{Value: str, Label: b.opts.Labeler(str)})
		}
	}
	applyValidations(&field, schema)
	applyFormatHints(&field)
	return field
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if schema.MinLength > 0 {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(schema.MinLength, 10)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*schema.MaxLength, 10)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	if schema.Format != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleFormat,
			Params: map[string]string{"format": schema.Format},
		})
	}
}

func applyFormatHints(field *Field) {
	switch {
	case len(field.Options) > 0:
		field.ensureUIHints()[HintWidget] = "select"
	case field.Format == "email":
		field.ensureUIHints()[HintInputType] = "email"
	}
}

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return fmt.Errorf("model builder: operation id is required")
	}
	if len(op.RequestBody.Properties) == 0 {
		return fmt.Errorf("model builder: operation %q has no request body properties", op.ID)
	}
	return nil
}
