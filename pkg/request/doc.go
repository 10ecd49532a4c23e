// Package request defines the Submission Draft for a student service request
// together with its enumerations. A Draft starts with every field empty and is
// mutated one field at a time through Set.
package request
