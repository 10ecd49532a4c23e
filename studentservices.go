// Package studentservices renders and processes the Student Services request
// form. It wraps the orchestrator with the bundled OpenAPI document so callers
// can produce the form without wiring sources themselves.
package studentservices

import (
	"context"

	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
	"github.com/goliatone/go-studentservices/pkg/orchestrator"
	"github.com/goliatone/go-studentservices/pkg/render"
	"github.com/goliatone/go-studentservices/pkg/theming"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator returns an orchestrator whose loader reads the bundled
// OpenAPI document. Later options override the defaults.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	defaults := []orchestrator.Option{
		orchestrator.WithLoader(NewLoader(pkgopenapi.WithFileSystem(SchemaFS()))),
		orchestrator.WithParser(NewParser()),
	}
	return orchestrator.New(append(defaults, options...)...)
}

// Request returns an orchestrator request targeting the request form.
func Request(opts RenderOptions) orchestrator.Request {
	return orchestrator.Request{
		Source:        DocumentSource(),
		OperationID:   OperationID,
		RenderOptions: opts,
	}
}

// GenerateHTML renders the request form with the HTML renderer and the
// bundled theme.
func GenerateHTML(ctx context.Context, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	defaults := []orchestrator.Option{
		orchestrator.WithThemeSelector(theming.Default(), theming.DefaultTheme, theming.DefaultVariant),
	}
	gen := NewOrchestrator(append(defaults, options...)...)
	req := Request(opts)
	req.Renderer = "html"
	return gen.Generate(ctx, req)
}

// WithThemeSelector forwards a theme selector to the orchestrator.
func WithThemeSelector(selector orchestrator.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}
