// Package openapi exposes the public contracts for the loader and parser
// stages that turn the embedded service request document into operations.
// Implementations live under internal/openapi so kin-openapi types never leak
// into callers.
package openapi
