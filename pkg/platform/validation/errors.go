package validation

import (
	"strings"
)

// FieldError is a single failed check. Field is a dotted path such as
// "items.0.price".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every field failure found while validating one input.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed at least one check.
func (e *Error) Has(field string) bool {
	return len(e.Messages(field)) > 0
}

// Messages returns the failure messages recorded for field, in order.
func (e *Error) Messages(field string) []string {
	var out []string
	for _, f := range e.Fields {
		if f.Field == field {
			out = append(out, f.Message)
		}
	}
	return out
}

// Errors collects field failures. The zero value is ready to use.
type Errors struct {
	fields []FieldError
}

// Add records a failure for field.
func (c *Errors) Add(field, message string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
}

// Len returns the number of recorded failures.
func (c *Errors) Len() int {
	return len(c.fields)
}

// Err returns nil when nothing was recorded, otherwise an *Error holding a
// copy of the recorded failures.
func (c *Errors) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: append([]FieldError(nil), c.fields...)}
}

// Join builds a dotted field path, skipping an empty prefix.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
