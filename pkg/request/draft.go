package request

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Field names as they appear on the wire and in the form model.
const (
	FieldStudentName       = "studentName"
	FieldPhone             = "phone"
	FieldBsolEmail         = "bsolEmail"
	FieldProgram           = "program"
	FieldInquiryType       = "inquiryType"
	FieldComplaintType     = "complaintType"
	FieldAcademicIssueType = "academicIssueType"
	FieldInquiryDetails    = "inquiryDetails"
)

// ErrUnknownField is returned when a field name is not part of the draft.
var ErrUnknownField = errors.New("request: unknown field")

// FieldNames lists the draft fields in form order.
func FieldNames() []string {
	return []string{
		FieldStudentName,
		FieldPhone,
		FieldBsolEmail,
		FieldProgram,
		FieldInquiryType,
		FieldComplaintType,
		FieldAcademicIssueType,
		FieldInquiryDetails,
	}
}

// IsField reports whether name is a draft field.
func IsField(name string) bool {
	for _, candidate := range FieldNames() {
		if candidate == name {
			return true
		}
	}
	return false
}

// Draft is the in-memory, not-yet-submitted set of form values. The zero value
// is the empty draft. Validation tags are read by pkg/validation.
type Draft struct {
	StudentName       string            `json:"studentName" form:"studentName" mapstructure:"studentName" validate:"min=2"`
	Phone             string            `json:"phone" form:"phone" mapstructure:"phone" validate:"min=10"`
	BsolEmail         string            `json:"bsolEmail" form:"bsolEmail" mapstructure:"bsolEmail" validate:"email"`
	Program           Program           `json:"program" form:"program" mapstructure:"program" validate:"required,program"`
	InquiryType       InquiryType       `json:"inquiryType" form:"inquiryType" mapstructure:"inquiryType" validate:"required,inquiry_type"`
	ComplaintType     ComplaintType     `json:"complaintType" form:"complaintType" mapstructure:"complaintType" validate:"omitempty,complaint_type"`
	AcademicIssueType AcademicIssueType `json:"academicIssueType" form:"academicIssueType" mapstructure:"academicIssueType" validate:"omitempty,academic_issue_type"`
	InquiryDetails    string            `json:"inquiryDetails" form:"inquiryDetails" mapstructure:"inquiryDetails" validate:"min=10"`
}

// Set assigns value to the named field. Values are stored verbatim; checking
// them is the validation schema's job.
func (d *Draft) Set(name, value string) error {
	switch name {
	case FieldStudentName:
		d.StudentName = value
	case FieldPhone:
		d.Phone = value
	case FieldBsolEmail:
		d.BsolEmail = value
	case FieldProgram:
		d.Program = Program(value)
	case FieldInquiryType:
		d.InquiryType = InquiryType(value)
	case FieldComplaintType:
		d.ComplaintType = ComplaintType(value)
	case FieldAcademicIssueType:
		d.AcademicIssueType = AcademicIssueType(value)
	case FieldInquiryDetails:
		d.InquiryDetails = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Get returns the value of the named field.
func (d Draft) Get(name string) (string, error) {
	switch name {
	case FieldStudentName:
		return d.StudentName, nil
	case FieldPhone:
		return d.Phone, nil
	case FieldBsolEmail:
		return d.BsolEmail, nil
	case FieldProgram:
		return string(d.Program), nil
	case FieldInquiryType:
		return string(d.InquiryType), nil
	case FieldComplaintType:
		return string(d.ComplaintType), nil
	case FieldAcademicIssueType:
		return string(d.AcademicIssueType), nil
	case FieldInquiryDetails:
		return d.InquiryDetails, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Values returns the draft as a name to value map, suitable for templates and
// visibility evaluation.
func (d Draft) Values() map[string]any {
	out := make(map[string]any, len(FieldNames()))
	for _, name := range FieldNames() {
		value, _ := d.Get(name)
		out[name] = value
	}
	return out
}

// DraftFromValues builds a draft from loosely typed values. Unknown keys are
// reported together, non-string values are formatted with fmt.
func DraftFromValues(values map[string]any) (Draft, error) {
	var (
		draft   Draft
		unknown []string
	)
	for name, raw := range values {
		var value string
		switch v := raw.(type) {
		case nil:
		case string:
			value = v
		default:
			value = fmt.Sprint(v)
		}
		if err := draft.Set(name, value); err != nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return draft, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}
	return draft, nil
}
