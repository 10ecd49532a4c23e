// Package model defines the typed form model consumed by renderers and the
// form controller. Builders reside in internal/model but return the types
// defined here. Fields carry their enum options, canonical validation rules
// (minLength, maxLength, pattern, format) and two string maps: Metadata for
// behavioural data such as `visibilityRule` and `order`, and UIHints for
// renderer-facing directives such as `widget`, `icon` and `inputType`.
package model
