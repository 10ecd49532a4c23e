package form

import (
	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/request"
	"github.com/goliatone/go-studentservices/pkg/visibility"
)

// Panel names the conditional block currently shown.
type Panel string

const (
	PanelNone      Panel = "none"
	PanelComplaint Panel = "complaint"
	PanelAcademic  Panel = "academic"
)

// DefaultRules shows the complaint and academic sub-type fields only for
// their inquiry type.
func DefaultRules() visibility.Rules {
	return visibility.Rules{
		request.FieldComplaintType:     `inquiryType == "complaint"`,
		request.FieldAcademicIssueType: `inquiryType == "academic"`,
	}
}

// RulesFromModel collects the visibility rules declared on form fields.
func RulesFromModel(form model.FormModel) visibility.Rules {
	rules := visibility.Rules{}
	for _, field := range form.Fields {
		if rule := field.VisibilityRule(); rule != "" {
			rules[field.Name] = rule
		}
	}
	return rules
}

// panelFor derives the panel from the hidden set. Complaint wins if custom
// rules ever reveal both.
func panelFor(hidden map[string]bool) Panel {
	switch {
	case !hidden[request.FieldComplaintType]:
		return PanelComplaint
	case !hidden[request.FieldAcademicIssueType]:
		return PanelAcademic
	default:
		return PanelNone
	}
}
