package validation

import "github.com/goliatone/go-studentservices/pkg/request"

// Issue is a single field failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a draft. Errors maps field name to its
// message and is empty when the draft is valid.
type Result struct {
	Errors map[string]string `json:"errors"`
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the message for field, or "".
func (r Result) Error(field string) string {
	return r.Errors[field]
}

// Fields lists the failing fields in form order.
func (r Result) Fields() []string {
	var out []string
	for _, name := range request.FieldNames() {
		if _, ok := r.Errors[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Issues lists failures in form order.
func (r Result) Issues() []Issue {
	fields := r.Fields()
	out := make([]Issue, 0, len(fields))
	for _, name := range fields {
		out = append(out, Issue{Field: name, Message: r.Errors[name]})
	}
	return out
}
