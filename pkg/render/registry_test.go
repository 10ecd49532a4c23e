package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
)

type stubRenderer struct {
	name, contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui", contentType: "text/plain"})
	registry.MustRegister(stubRenderer{name: "html", contentType: "text/html; charset=utf-8"})

	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected missing name error")
	}

	if got := registry.List(); len(got) != 2 || got[0] != "html" || got[1] != "tui" {
		t.Fatalf("unexpected list %v", got)
	}

	renderer, err := registry.ByContentType("text/plain")
	if err != nil || renderer.Name() != "tui" {
		t.Fatalf("ByContentType: %v %v", renderer, err)
	}

	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if !registry.Has("html") || registry.Has("pdf") {
		t.Fatalf("Has mismatch")
	}
}
