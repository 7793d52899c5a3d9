// Package validation checks and normalizes user form input before it is
// sent to the API. Results are plain data: a normalized record or a map of
// field name to message that the rendering layer binds by field.
package validation

import (
	"sort"
	"strings"
	"unicode/utf8"

	"usermgmt/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	FieldName  = "name"
	FieldEmail = "email"

	MaxNameLength = 100

	MsgNameRequired  = "Name is required"
	MsgNameTooLong   = "Name must be less than 100 characters"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email address"
)

var validate = validator.New()

// FieldErrors maps a field name to its first failing rule's message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

func ValidateCreate(in domain.UserCreate) (domain.UserCreate, FieldErrors) {
	errs := FieldErrors{}

	name, msg := checkName(in.Name)
	if msg != "" {
		errs[FieldName] = msg
	}

	email, msg := checkEmail(in.Email, true)
	if msg != "" {
		errs[FieldEmail] = msg
	}

	if len(errs) > 0 {
		return domain.UserCreate{}, errs
	}

	return domain.UserCreate{Name: name, Email: email}, nil
}

func ValidateUpdate(in domain.UserUpdate) (domain.UserUpdate, FieldErrors) {
	errs := FieldErrors{}
	var out domain.UserUpdate

	if in.Name != nil {
		name, msg := checkName(*in.Name)
		if msg != "" {
			errs[FieldName] = msg
		} else {
			out.Name = &name
		}
	}

	if in.Email != nil {
		email, msg := checkEmail(*in.Email, false)
		if msg != "" {
			errs[FieldEmail] = msg
		} else {
			out.Email = &email
		}
	}

	if len(errs) > 0 {
		return domain.UserUpdate{}, errs
	}

	return out, nil
}

func checkName(raw string) (string, string) {
	name := domain.NormalizeName(raw)
	if name == "" {
		return "", MsgNameRequired
	}
	// Length is in runes, the same unit the server's max=100 tag counts.
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", MsgNameTooLong
	}
	return name, ""
}

func checkEmail(raw string, required bool) (string, string) {
	email := strings.TrimSpace(raw)
	if email == "" && required {
		return "", MsgEmailRequired
	}
	if !IsEmail(email) {
		return "", MsgEmailInvalid
	}
	return domain.NormalizeEmail(email), ""
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}
