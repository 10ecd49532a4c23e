package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
)

func loadDocument(t *testing.T) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("..", "..", "..", "schemas", "studentservices.openapi.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile(path), raw)
}

func TestOperations_ServiceRequest(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())

	ops, err := p.Operations(context.Background(), loadDocument(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	op, ok := ops["createServiceRequest"]
	if !ok {
		t.Fatalf("createServiceRequest not extracted, got %v", ops)
	}
	if op.Method != "POST" || op.Path != "/requests" {
		t.Fatalf("unexpected route %s %s", op.Method, op.Path)
	}
	if !op.HasResponse("201") || !op.HasResponse("422") {
		t.Fatalf("expected 201 and 422 responses, got %v", op.Responses)
	}

	body := op.RequestBody
	wantRequired := []string{"studentName", "phone", "bsolEmail", "program", "inquiryType", "inquiryDetails"}
	if diff := cmp.Diff(wantRequired, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(body.Properties) != 8 {
		t.Fatalf("expected 8 properties, got %d", len(body.Properties))
	}

	if got := body.Properties["studentName"].MinLength; got != 2 {
		t.Fatalf("studentName minLength = %d, want 2", got)
	}
	if got := body.Properties["bsolEmail"].Format; got != "email" {
		t.Fatalf("bsolEmail format = %q, want email", got)
	}
	wantPrograms := []any{"acca", "btc", "foundation", "llb", "llm"}
	if diff := cmp.Diff(wantPrograms, body.Properties["program"].Enum); diff != "" {
		t.Fatalf("program enum mismatch (-want +got):\n%s", diff)
	}
	if got := len(body.Properties["academicIssueType"].Enum); got != 8 {
		t.Fatalf("academicIssueType enum size = %d, want 8", got)
	}
}

func TestOperations_RejectsEmptyDocument(t *testing.T) {
	raw := []byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: 1.0.0\npaths: {}\n")
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("empty.yaml"), raw)

	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}
