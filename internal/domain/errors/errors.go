package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field problem found in one pass, so a
// bad site.yaml or data file reports all of them at once.
type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

// Merge appends the items of other with prefix prepended to their fields,
// e.g. Merge("events[2]", ve).
func (e *ValidationError) Merge(prefix string, other ValidationError) {
	for _, it := range other.Items {
		if prefix != "" {
			if it.Field == "" {
				it.Field = prefix
			} else {
				it.Field = prefix + "." + it.Field
			}
		}
		e.Items = append(e.Items, it)
	}
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// Err returns e as an error, or nil when nothing was added.
func (e ValidationError) Err() error {
	if e.HasAny() {
		return e
	}
	return nil
}
