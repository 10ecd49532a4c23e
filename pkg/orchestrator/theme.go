package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves a theme/variant pair into a selection.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector resolves themes through selector. name and variant are
// used when a request does not specify its own.
func WithThemeSelector(selector ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithThemeFallbacks sets the partials used when a theme does not override
// them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = mergeStrings(nil, fallbacks)
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.page":  "templates/form.tmpl",
		"forms.input": "templates/form.tmpl",
	}
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	return rendererConfig(selection, fallbacks), nil
}

// rendererConfig flattens a selection into what renderers consume. Variant
// tokens, templates and assets override the manifest's.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(nil, fallbacks),
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}

	tokens := mergeStrings(nil, manifest.Tokens)
	cfg.Partials = mergeStrings(cfg.Partials, manifest.Templates)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(nil, manifest.Assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		cfg.Partials = mergeStrings(cfg.Partials, variant.Templates)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		files = mergeStrings(files, variant.Assets.Files)
	}

	cfg.Tokens = tokens
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
