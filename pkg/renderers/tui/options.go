package tui

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-studentservices/pkg/form"
)

// OutputFormat controls how the accepted submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(raw)))
	switch format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	}
	return "", fmt.Errorf("%w: %q (want json, form or pretty)", ErrUnknownOutputFormat, raw)
}

const defaultMaxPasses = 3

// skipOptionLabel prefixes selects for fields that may stay empty.
const skipOptionLabel = "(skip)"

// Theme captures optional prefixes the renderer puts in front of messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithControllerOptions forwards options to the form controller created for
// each session, e.g. a submit handler or a stricter schema.
func WithControllerOptions(options ...form.Option) Option {
	return func(r *Renderer) {
		r.controllerOptions = append(r.controllerOptions, options...)
	}
}

// WithMaxPasses bounds how many times the renderer walks the invalid fields
// before giving up.
func WithMaxPasses(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}
