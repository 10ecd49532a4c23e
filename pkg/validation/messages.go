package validation

import "github.com/goliatone/go-studentservices/pkg/request"

// DefaultMessages holds the fixed, non-localized message for each field. A
// field has exactly one message regardless of which rule it failed.
var DefaultMessages = map[string]string{
	request.FieldStudentName:       "Name must be at least 2 characters.",
	request.FieldPhone:             "Please enter a valid phone number.",
	request.FieldBsolEmail:         "Please enter a valid Blackstone email.",
	request.FieldProgram:           "Please select your program.",
	request.FieldInquiryType:       "Please select an inquiry type.",
	request.FieldComplaintType:     "Please select a complaint type.",
	request.FieldAcademicIssueType: "Please select an academic issue type.",
	request.FieldInquiryDetails:    "Please provide more details about your inquiry.",
}
