package validation

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	codePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	lineSchema  = NewSchema(Required("code", String(codePattern)))
	testSchema  = NewSchema(
		Required("name", String()),
		Required("lines", List(1, Object(lineSchema))),
	)
)

func validationError(t *testing.T, err error) *Error {
	t.Helper()
	var ve *Error
	require.True(t, errors.As(err, &ve), "expected *validation.Error, got %v", err)
	return ve
}

func TestSchemaValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		err := testSchema.Validate(map[string]any{
			"name":  "x",
			"lines": []any{map[string]any{"code": "ABC"}},
		})
		assert.NoError(t, err)
	})

	t.Run("aggregates every failure", func(t *testing.T) {
		err := testSchema.Validate(map[string]any{
			"lines": []any{
				map[string]any{"code": "abc"},
				map[string]any{},
				"nope",
				nil,
			},
			"extra": 1,
		})
		ve := validationError(t, err)
		assert.Equal(t, []FieldError{
			{Field: "name", Message: MsgMissing},
			{Field: "lines.0.code", Message: MsgNoMatch},
			{Field: "lines.1.code", Message: MsgMissing},
			{Field: "lines.2", Message: MsgInvalidType},
			{Field: "lines.3", Message: MsgNull},
			{Field: "extra", Message: MsgUnknown},
		}, ve.Fields)
	})

	t.Run("null and wrong types", func(t *testing.T) {
		err := testSchema.Validate(map[string]any{"name": nil, "lines": "x"})
		ve := validationError(t, err)
		assert.Equal(t, []string{MsgNull}, ve.Messages("name"))
		assert.Equal(t, []string{MsgNotList}, ve.Messages("lines"))
	})

	t.Run("non-string value", func(t *testing.T) {
		err := testSchema.Validate(map[string]any{"name": 12.5, "lines": []any{map[string]any{"code": "ABC"}}})
		ve := validationError(t, err)
		assert.Equal(t, []string{MsgNotString}, ve.Messages("name"))
	})

	t.Run("list shorter than minimum", func(t *testing.T) {
		err := testSchema.Validate(map[string]any{"name": "x", "lines": []any{}})
		ve := validationError(t, err)
		assert.Equal(t, []string{MsgShorterThan(1)}, ve.Messages("lines"))
	})

	t.Run("top level must be an object", func(t *testing.T) {
		err := testSchema.Validate([]any{})
		ve := validationError(t, err)
		assert.True(t, ve.Has("_schema"))
	})
}

func TestErrors(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Err())

	errs.Add("a", "first")
	errs.Add("a", "second")
	assert.Equal(t, 2, errs.Len())

	ve := validationError(t, errs.Err())
	assert.Equal(t, []string{"first", "second"}, ve.Messages("a"))
	assert.False(t, ve.Has("b"))
	assert.Equal(t, "validation failed: a: first; a: second", ve.Error())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "items", Join("", "items"))
	assert.Equal(t, "items.0", Join("items", "0"))
}
