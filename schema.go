package studentservices

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
)

const (
	// OperationID is the OpenAPI operation describing the request form.
	OperationID = "createServiceRequest"

	schemaFile = "studentservices.openapi.yaml"
)

//go:embed schemas/studentservices.openapi.yaml
var embeddedSchemas embed.FS

// SchemaFS exposes the bundled OpenAPI document.
func SchemaFS() fs.FS {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		return embeddedSchemas
	}
	return sub
}

// DocumentSource points at the bundled document inside SchemaFS.
func DocumentSource() pkgopenapi.Source {
	return pkgopenapi.SourceFromFS(schemaFile)
}

// LoadDocument reads the bundled OpenAPI document.
func LoadDocument(ctx context.Context) (pkgopenapi.Document, error) {
	return NewLoader(pkgopenapi.WithFileSystem(SchemaFS())).Load(ctx, DocumentSource())
}

// OpenAPIJSON returns the bundled document re-encoded as JSON.
func OpenAPIJSON(ctx context.Context) ([]byte, error) {
	data, err := fs.ReadFile(SchemaFS(), schemaFile)
	if err != nil {
		return nil, fmt.Errorf("studentservices: read schema: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("studentservices: load schema: %w", err)
	}
	out, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("studentservices: encode schema: %w", err)
	}
	return out, nil
}
