// Package validator
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	SourceBody  = "body"
	SourceQuery = "query"
)

// Violation is one entry of a 422 detail array.
type Violation struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type Validator interface {
	Validate(data any, source string) []Violation
}

type DefaultValidator struct {
	validate *validator.Validate
}

func NewValidator() Validator {
	return &DefaultValidator{
		validate: validator.New(),
	}
}

func (v *DefaultValidator) Validate(data any, source string) []Violation {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Loc: []string{source}, Msg: "invalid payload", Type: "value_error"}}
	}

	violations := make([]Violation, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := v.resolveFieldName(data, e.StructField())
		msg, typ := v.messageFor(e)
		violations = append(violations, Violation{
			Loc:  []string{source, field},
			Msg:  msg,
			Type: typ,
		})
	}

	return violations
}

// IntParsing reports a query or body value that is not an integer.
func IntParsing(source, field string) Violation {
	return Violation{
		Loc:  []string{source, field},
		Msg:  "Input should be a valid integer",
		Type: "int_parsing",
	}
}

func (v *DefaultValidator) messageFor(e validator.FieldError) (string, string) {
	numeric := e.Kind() >= reflect.Int && e.Kind() <= reflect.Float64

	switch e.Tag() {
	case "required":
		return "Field required", "missing"
	case "email":
		return "value is not a valid email address", "value_error"
	case "min":
		if numeric {
			return fmt.Sprintf("Input should be greater than or equal to %s", e.Param()), "greater_than_equal"
		}
		return fmt.Sprintf("String should have at least %s character(s)", e.Param()), "string_too_short"
	case "max":
		if numeric {
			return fmt.Sprintf("Input should be less than or equal to %s", e.Param()), "less_than_equal"
		}
		return fmt.Sprintf("String should have at most %s characters", e.Param()), "string_too_long"
	}

	return fmt.Sprintf("%s is invalid", e.Field()), "value_error"
}

func (v *DefaultValidator) resolveFieldName(data any, field string) string {
	t := reflect.TypeOf(data)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if f, ok := t.FieldByName(field); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}

	return strings.ToLower(field)
}
