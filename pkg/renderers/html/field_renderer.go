package html

import (
	"strings"

	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
)

const (
	widgetInput    = "input"
	widgetSelect   = "select"
	widgetTextarea = "textarea"
)

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	Name           string
	ID             string
	Label          string
	Description    string
	Placeholder    string
	Widget         string
	InputType      string
	IconRaw        string
	Value          string
	VisibilityRule string
	Required       bool
	Hidden         bool
	Invalid        bool
	MinLength      int
	Options        []optionView
	Errors         []string
}

func buildFieldView(field model.Field, opts render.RenderOptions) fieldView {
	value := opts.Value(field.Name)
	errors := render.MergeFormErrors(opts.Errors[field.Name])

	view := fieldView{
		Name:           field.Name,
		ID:             controlID(field.Name),
		Label:          field.Label,
		Description:    field.Description,
		Placeholder:    field.Placeholder,
		IconRaw:        field.UIHints[model.HintIconRaw],
		Value:          value,
		VisibilityRule: field.VisibilityRule(),
		Required:       field.Required,
		Hidden:         opts.IsHidden(field.Name),
		Invalid:        len(errors) > 0,
		MinLength:      field.MinLength(),
		Errors:         errors,
	}
	if view.Label == "" {
		view.Label = field.Name
	}

	view.Widget, view.InputType = resolveWidget(field)
	if view.Widget == widgetSelect {
		view.Options = make([]optionView, 0, len(field.Options))
		for _, opt := range field.Options {
			view.Options = append(view.Options, optionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == value,
			})
		}
	}
	return view
}

func resolveWidget(field model.Field) (widget, inputType string) {
	hint := strings.TrimSpace(field.UIHints[model.HintWidget])
	switch {
	case hint == widgetSelect || (hint == "" && len(field.Options) > 0):
		return widgetSelect, ""
	case hint == widgetTextarea:
		return widgetTextarea, ""
	}

	switch hint {
	case "tel", "email", "url", "number":
		return widgetInput, hint
	}
	if inputType := strings.TrimSpace(field.UIHints[model.HintInputType]); inputType != "" {
		return widgetInput, inputType
	}
	return widgetInput, "text"
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "ss-" + trimmed
}
