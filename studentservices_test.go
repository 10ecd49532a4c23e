package studentservices

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), RenderOptions{
		Values: map[string]string{"inquiryType": "complaint"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		"Student Services",
		`data-theme="studentservices"`,
		"--ss-color-primary: #1d4ed8;",
		`<option value="complaint" selected>Complaint</option>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestNewOrchestratorBuildsBundledForm(t *testing.T) {
	form, err := NewOrchestrator().Build(context.Background(), Request(RenderOptions{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.OperationID != OperationID {
		t.Fatalf("operation id = %q", form.OperationID)
	}
	if len(form.Fields) != 8 {
		t.Fatalf("expected 8 fields, got %d", len(form.Fields))
	}
}

func TestOpenAPIJSON(t *testing.T) {
	data, err := OpenAPIJSON(context.Background())
	if err != nil {
		t.Fatalf("openapi json: %v", err)
	}

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		t.Fatalf("unexpected openapi version %q", doc.OpenAPI)
	}
	if _, ok := doc.Paths["/requests"]; !ok {
		t.Fatalf("expected /requests path")
	}
}

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("expected document bytes")
	}
}
