// Package theming ships the default Student Services theme manifest and a
// selector that resolves theme/variant pairs for the orchestrator.
package theming

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultTheme names the bundled manifest.
	DefaultTheme = "studentservices"
	// DefaultVariant is the variant used when none is requested.
	DefaultVariant = "light"
)

var (
	// ErrThemeNotFound reports an unknown theme name.
	ErrThemeNotFound = errors.New("theming: theme not found")
	// ErrVariantNotFound reports a variant the theme does not declare.
	ErrVariantNotFound = errors.New("theming: variant not found")
)

// Manifest returns a fresh copy of the bundled theme.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"ss-color-primary":    "#1d4ed8",
			"ss-color-primary-fg": "#ffffff",
			"ss-color-surface":    "#ffffff",
			"ss-color-background": "#f3f4f6",
			"ss-color-text":       "#111827",
			"ss-color-muted":      "#6b7280",
			"ss-color-border":     "#d1d5db",
			"ss-color-error":      "#dc2626",
			"ss-color-success":    "#15803d",
			"ss-radius":           "0.5rem",
			"ss-font-family":      "system-ui, sans-serif",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"html.stylesheet": "studentservices.css",
				"html.script":     "studentservices.js",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"ss-color-surface":    "#1f2937",
					"ss-color-background": "#111827",
					"ss-color-text":       "#f9fafb",
					"ss-color-muted":      "#9ca3af",
					"ss-color-border":     "#374151",
					"ss-color-primary":    "#3b82f6",
				},
			},
		},
	}
}

// Selector resolves manifests registered with it. It satisfies the
// orchestrator's ThemeSelector interface.
type Selector struct {
	mu        sync.RWMutex
	provider  manifestRegistry
	manifests map[string]*theme.Manifest
}

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// NewSelector returns a selector preloaded with the given manifests.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{
		provider:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Default returns a selector holding only the bundled manifest.
func Default() *Selector {
	s, err := NewSelector(Manifest())
	if err != nil {
		panic(err)
	}
	return s
}

// Register validates manifest with go-theme and makes it selectable.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("theming: manifest is nil")
	}
	if err := s.provider.Register(manifest); err != nil {
		return fmt.Errorf("theming: register %q: %w", manifest.Name, err)
	}
	s.mu.Lock()
	s.manifests[manifest.Name] = manifest
	s.mu.Unlock()
	return nil
}

// Themes lists registered theme names in sorted order.
func (s *Selector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the manifest for name and variant. Empty values fall back to
// the bundled defaults.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = DefaultTheme
	}
	if variant == "" {
		variant = DefaultVariant
	}

	manifest, err := s.lookup(name, variant)
	if err != nil {
		return nil, err
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Check reports whether name and variant resolve to a registered manifest,
// applying the same defaults as Select.
func (s *Selector) Check(name, variant string) error {
	if name == "" {
		name = DefaultTheme
	}
	if variant == "" {
		variant = DefaultVariant
	}
	_, err := s.lookup(name, variant)
	return err
}

func (s *Selector) lookup(name, variant string) (*theme.Manifest, error) {
	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	if len(manifest.Variants) > 0 {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, name, variant)
		}
	}
	return manifest, nil
}
