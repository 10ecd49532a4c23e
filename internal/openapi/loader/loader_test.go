package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
)

func TestLoad_FromFS(t *testing.T) {
	files := fstest.MapFS{
		"api.yaml": &fstest.MapFile{Data: []byte("openapi: 3.0.3")},
	}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := string(doc.Raw()); got != "openapi: 3.0.3" {
		t.Fatalf("unexpected payload %q", got)
	}
	if doc.Location() != "api.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.LoaderOptions{}).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("expected payload")
	}
}

func TestLoad_FSWithoutFileSystem(t *testing.T) {
	_, err := New(pkgopenapi.LoaderOptions{}).Load(context.Background(), pkgopenapi.SourceFromFS("api.yaml"))
	if err == nil {
		t.Fatalf("expected error when no filesystem is configured")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := fstest.MapFS{"api.yaml": &fstest.MapFile{Data: []byte("x")}}
	_, err := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files))).Load(ctx, pkgopenapi.SourceFromFS("api.yaml"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
