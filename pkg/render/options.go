package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]string
	// Errors surfaces field-level validation feedback. Renderers show every
	// entry, so callers pass only the errors that should be visible.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Hidden marks fields whose visibility rule currently evaluates false.
	// Hidden fields stay in the markup so client-side toggles can reveal them.
	Hidden map[string]bool
	// HiddenFields are emitted as <input type="hidden"> pairs.
	HiddenFields map[string]string
	// Notice is a confirmation banner shown above the form.
	Notice string
	// Theme carries resolved tokens and CSS variables.
	Theme *theme.RendererConfig
}

// IsHidden reports whether the named field should start collapsed.
func (o RenderOptions) IsHidden(name string) bool {
	return o.Hidden[name]
}

// Value returns the prefilled value for name.
func (o RenderOptions) Value(name string) string {
	return o.Values[name]
}
