package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
	"github.com/goliatone/go-studentservices/pkg/request"
)

// Renderer implements render.Renderer for terminal sessions. Render prompts
// for every visible field through a form.Controller, submits, and returns the
// accepted submission serialized in the configured format.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	theme             Theme
	controllerOptions []form.Option
	maxPasses         int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "! "},
		maxPasses:    defaultMaxPasses,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	format, err := ParseOutputFormat(string(r.outputFormat))
	if err != nil {
		return nil, err
	}
	r.outputFormat = format
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs an interactive session. opts.Values seeds the draft; seeded
// values become prompt defaults.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	seed := make(map[string]any, len(opts.Values))
	for key, value := range opts.Values {
		seed[key] = value
	}
	initial, err := request.DraftFromValues(seed)
	if err != nil {
		return nil, fmt.Errorf("tui: seed values: %w", err)
	}

	controllerOptions := append([]form.Option{
		form.WithFormModel(fm),
		form.WithInitial(initial),
	}, r.controllerOptions...)
	ctrl := form.New(controllerOptions...)

	if title := fm.UIHints["layout.title"]; title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}

	var only map[string]bool
	for pass := 1; ; pass++ {
		if err := r.promptFields(ctx, fm, ctrl, only); err != nil {
			return nil, err
		}

		sub, err := ctrl.Submit(ctx)
		if err == nil {
			return r.serialize(fm, sub)
		}

		var invalid *form.ValidationError
		if !errors.As(err, &invalid) {
			return nil, err
		}
		for _, name := range invalid.FieldNames() {
			if err := r.fail(ctx, invalid.Fields[name]); err != nil {
				return nil, err
			}
		}
		if pass >= r.maxPasses {
			return nil, err
		}
		only = make(map[string]bool, len(invalid.Fields))
		for name := range invalid.Fields {
			only[name] = true
		}
	}
}

// promptFields walks the form in order. Visibility is re-read before every
// field so answering inquiryType reveals the matching panel. When only is
// non-nil, other fields are skipped.
func (r *Renderer) promptFields(ctx context.Context, fm model.FormModel, ctrl *form.Controller, only map[string]bool) error {
	for _, field := range fm.Fields {
		if only != nil && !only[field.Name] {
			continue
		}
		state, err := ctrl.FieldState(field.Name)
		if err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		if !state.Visible {
			continue
		}

		value, err := r.promptField(ctx, field, state.Value, !field.Required && !state.Required)
		if err != nil {
			return err
		}
		if err := ctrl.SetField(field.Name, value); err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Name, err)
		}

		state, err = ctrl.FieldState(field.Name)
		if err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		if state.Error != "" {
			if err := r.fail(ctx, state.Error); err != nil {
				return err
			}
		}
	}
	return nil
}

// promptField asks for one value. Optional selects get a leading skip entry
// that maps to "".
func (r *Renderer) promptField(ctx context.Context, field model.Field, current string, optional bool) (string, error) {
	label := displayLabel(field)
	help := field.Description

	if len(field.Options) > 0 {
		choices := field.Options
		if optional {
			choices = append([]model.Option{{Label: skipOptionLabel}}, field.Options...)
		}
		labels := make([]string, 0, len(choices))
		defaultIdx := -1
		for idx, opt := range choices {
			labels = append(labels, opt.Label)
			if opt.Value == current {
				defaultIdx = idx
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(choices) {
			return "", fmt.Errorf("%w: %d for %q", ErrInvalidChoice, idx, field.Name)
		}
		return choices[idx].Value, nil
	}

	if field.UIHints[model.HintWidget] == "textarea" {
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: current,
			Help:    help,
		})
	}
	return r.driver.Input(ctx, InputConfig{
		Message: label,
		Default: current,
		Help:    help,
	})
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(fm model.FormModel, sub form.Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		values.Set("id", sub.ID)
		for _, name := range request.FieldNames() {
			if value, _ := sub.Request.Get(name); value != "" {
				values.Set(name, value)
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(fm, sub)), nil
	default:
		return json.Marshal(sub)
	}
}

func prettyPrint(fm model.FormModel, sub form.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submission %s\n", sub.ID)
	for _, field := range fm.Fields {
		value, _ := sub.Request.Get(field.Name)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), field.OptionLabel(value))
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}
