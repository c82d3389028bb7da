// Package validation checks untyped decoded input (the result of decoding JSON
// into any) against a set of named field validators. Every field is evaluated
// and all failures are reported together.
package validation

import (
	"regexp"
	"sort"
	"strconv"
)

// Failure messages. They are part of the HTTP error body.
const (
	MsgMissing     = "Missing data for required field."
	MsgNull        = "Field may not be null."
	MsgNotString   = "Not a valid string."
	MsgNotList     = "Not a valid list."
	MsgInvalidType = "Invalid input type."
	MsgNoMatch     = "String does not match expected pattern."
	MsgUnknown     = "Unknown field."
)

// Validator checks a present, non-null value found at path and records
// failures into errs.
type Validator func(errs *Errors, path string, value any)

// Field is a named, required field.
type Field struct {
	Name  string
	Check Validator
}

// Required declares a required field checked by v.
func Required(name string, v Validator) Field {
	return Field{Name: name, Check: v}
}

// Schema is an ordered set of required fields. Keys not declared in the
// schema are rejected.
type Schema struct {
	fields []Field
	known  map[string]struct{}
}

// NewSchema builds a schema from its fields. Field order determines the
// order of reported failures.
func NewSchema(fields ...Field) *Schema {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}
	return &Schema{fields: fields, known: known}
}

// Validate checks raw against the schema and returns nil or an *Error.
func (s *Schema) Validate(raw any) error {
	var errs Errors
	Object(s)(&errs, "", raw)
	return errs.Err()
}

func (s *Schema) check(errs *Errors, prefix string, obj map[string]any) {
	for _, f := range s.fields {
		path := Join(prefix, f.Name)
		value, ok := obj[f.Name]
		switch {
		case !ok:
			errs.Add(path, MsgMissing)
		case value == nil:
			errs.Add(path, MsgNull)
		default:
			f.Check(errs, path, value)
		}
	}

	var unknown []string
	for key := range obj {
		if _, ok := s.known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs.Add(Join(prefix, key), MsgUnknown)
	}
}

// Object validates a nested JSON object against s.
func Object(s *Schema) Validator {
	return func(errs *Errors, path string, value any) {
		obj, ok := value.(map[string]any)
		if !ok {
			field := path
			if field == "" {
				field = "_schema"
			}
			errs.Add(field, MsgInvalidType)
			return
		}
		s.check(errs, path, obj)
	}
}

// String accepts a JSON string that matches every pattern.
func String(patterns ...*regexp.Regexp) Validator {
	return func(errs *Errors, path string, value any) {
		str, ok := value.(string)
		if !ok {
			errs.Add(path, MsgNotString)
			return
		}
		for _, re := range patterns {
			if !re.MatchString(str) {
				errs.Add(path, MsgNoMatch)
				return
			}
		}
	}
}

// List accepts a JSON array of at least minLen elements, each checked by elem.
// Element failures are reported under path.<index>.
func List(minLen int, elem Validator) Validator {
	return func(errs *Errors, path string, value any) {
		list, ok := value.([]any)
		if !ok {
			errs.Add(path, MsgNotList)
			return
		}
		for i, v := range list {
			elemPath := Join(path, strconv.Itoa(i))
			if v == nil {
				errs.Add(elemPath, MsgNull)
				continue
			}
			elem(errs, elemPath, v)
		}
		if len(list) < minLen {
			errs.Add(path, MsgShorterThan(minLen))
		}
	}
}

// MsgShorterThan is the failure message for a list below its minimum length.
func MsgShorterThan(n int) string {
	return "Shorter than minimum length " + strconv.Itoa(n) + "."
}
