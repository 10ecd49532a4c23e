package form

import (
	"errors"
	"strings"

	"github.com/goliatone/go-studentservices/pkg/request"
)

var (
	// ErrInvalid matches any *ValidationError via errors.Is.
	ErrInvalid = errors.New("form: validation failed")
	// ErrSubmitFailed wraps errors returned by the SubmitHandler.
	ErrSubmitFailed = errors.New("form: submit handler failed")
)

// ValidationError is returned by Submit when one or more fields fail. Fields
// maps field name to its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalid.Error() + ": " + strings.Join(e.FieldNames(), ", ")
}

// FieldNames lists the failing fields in form order.
func (e *ValidationError) FieldNames() []string {
	var names []string
	for _, name := range request.FieldNames() {
		if _, ok := e.Fields[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Is reports ErrInvalid as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
