// Package orchestrator wires the loader, parser, model builder, UI schema
// decorators and renderers into a single pipeline: OpenAPI document in,
// rendered form out.
package orchestrator
