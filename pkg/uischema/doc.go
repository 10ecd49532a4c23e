// Package uischema loads UI schema overlays and applies them to form models.
// An overlay carries the copy the OpenAPI document does not: headings,
// placeholders, icons, option labels, field order and visibility rules.
package uischema
