package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-studentservices/pkg/request"
)

// Option configures a Schema.
type Option func(*Schema)

// WithConditionalSubtypes makes complaintType required when inquiryType is
// "complaint" and academicIssueType required when it is "academic". Off by
// default, both sub-types are optional.
func WithConditionalSubtypes() Option {
	return func(s *Schema) {
		s.conditional = true
	}
}

// WithMessages overrides the message for the given fields.
func WithMessages(messages map[string]string) Option {
	return func(s *Schema) {
		for field, msg := range messages {
			if msg = strings.TrimSpace(msg); msg != "" {
				s.messages[field] = msg
			}
		}
	}
}

// Schema validates a request.Draft. Rules are independent per field unless
// WithConditionalSubtypes is set. A Schema is safe for concurrent use.
type Schema struct {
	validate    *validator.Validate
	messages    map[string]string
	conditional bool
}

// New builds a Schema backed by go-playground/validator.
func New(options ...Option) *Schema {
	s := &Schema{messages: make(map[string]string, len(DefaultMessages))}
	for field, msg := range DefaultMessages {
		s.messages[field] = msg
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "program", func(fl validator.FieldLevel) bool {
		return request.Program(fl.Field().String()).Valid()
	})
	mustRegister(v, "inquiry_type", func(fl validator.FieldLevel) bool {
		return request.InquiryType(fl.Field().String()).Valid()
	})
	mustRegister(v, "complaint_type", func(fl validator.FieldLevel) bool {
		return request.ComplaintType(fl.Field().String()).Valid()
	})
	mustRegister(v, "academic_issue_type", func(fl validator.FieldLevel) bool {
		return request.AcademicIssueType(fl.Field().String()).Valid()
	})
	if s.conditional {
		v.RegisterStructValidation(requireSubtypes, request.Draft{})
	}
	s.validate = v
	return s
}

// ConditionalSubtypes reports whether sub-types are conditionally required.
func (s *Schema) ConditionalSubtypes() bool {
	return s.conditional
}

// Required reports whether field must be filled when visible. Sub-types are
// required only with WithConditionalSubtypes.
func (s *Schema) Required(field string) bool {
	switch field {
	case request.FieldComplaintType, request.FieldAcademicIssueType:
		return s.conditional
	}
	return request.IsField(field)
}

// Message returns the fixed message for field.
func (s *Schema) Message(field string) string {
	return s.messages[field]
}

// Validate checks every field of the draft and returns one message per failing
// field.
func (s *Schema) Validate(draft request.Draft) Result {
	result := Result{Errors: map[string]string{}}

	err := s.validate.Struct(draft)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError only happens for non-struct input.
		panic(err)
	}
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, seen := result.Errors[name]; seen {
			continue
		}
		result.Errors[name] = s.messages[name]
	}
	return result
}

func requireSubtypes(sl validator.StructLevel) {
	draft, ok := sl.Current().Interface().(request.Draft)
	if !ok {
		return
	}
	switch draft.InquiryType {
	case request.InquiryComplaint:
		if draft.ComplaintType == "" {
			sl.ReportError(draft.ComplaintType, request.FieldComplaintType, "ComplaintType", "required_if", string(request.InquiryComplaint))
		}
	case request.InquiryAcademic:
		if draft.AcademicIssueType == "" {
			sl.ReportError(draft.AcademicIssueType, request.FieldAcademicIssueType, "AcademicIssueType", "required_if", string(request.InquiryAcademic))
		}
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
