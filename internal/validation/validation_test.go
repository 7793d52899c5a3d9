package validation

import (
	"strings"
	"testing"

	"usermgmt/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreate_Valid(t *testing.T) {
	out, errs := ValidateCreate(domain.UserCreate{Name: "  John Doe ", Email: " John@Example.COM "})

	require.Nil(t, errs)
	assert.Equal(t, "John Doe", out.Name)
	assert.Equal(t, "john@example.com", out.Email)
}

func TestValidateCreate_EmptyName(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n  "} {
		_, errs := ValidateCreate(domain.UserCreate{Name: name, Email: "a@b.com"})
		require.NotNil(t, errs, "name %q", name)
		assert.Equal(t, FieldErrors{FieldName: MsgNameRequired}, errs)
	}
}

func TestValidateCreate_NameLength(t *testing.T) {
	_, errs := ValidateCreate(domain.UserCreate{Name: strings.Repeat("a", 101), Email: "a@b.com"})
	assert.Equal(t, MsgNameTooLong, errs[FieldName])

	out, errs := ValidateCreate(domain.UserCreate{Name: " " + strings.Repeat("a", 100) + " ", Email: "a@b.com"})
	require.Nil(t, errs)
	assert.Len(t, out.Name, 100)

	// runes, not bytes
	_, errs = ValidateCreate(domain.UserCreate{Name: strings.Repeat("é", 100), Email: "a@b.com"})
	assert.Nil(t, errs)
}

func TestValidateCreate_Email(t *testing.T) {
	_, errs := ValidateCreate(domain.UserCreate{Name: "John", Email: "   "})
	assert.Equal(t, MsgEmailRequired, errs[FieldEmail])

	for _, email := range []string{"invalid-email", "a@", "@b.com", "a b@c.com", "john.example.com"} {
		_, errs := ValidateCreate(domain.UserCreate{Name: "John", Email: email})
		assert.Equal(t, MsgEmailInvalid, errs[FieldEmail], email)
	}
}

func TestValidateCreate_AllFieldErrorsTogether(t *testing.T) {
	_, errs := ValidateCreate(domain.UserCreate{})

	assert.Equal(t, FieldErrors{
		FieldName:  MsgNameRequired,
		FieldEmail: MsgEmailRequired,
	}, errs)
	assert.Equal(t, "email: Email is required; name: Name is required", errs.Error())
}

func TestValidateUpdate_Empty(t *testing.T) {
	out, errs := ValidateUpdate(domain.UserUpdate{})

	require.Nil(t, errs)
	assert.Nil(t, out.Name)
	assert.Nil(t, out.Email)
}

func TestValidateUpdate_PartialNormalizes(t *testing.T) {
	out, errs := ValidateUpdate(domain.UserUpdate{Email: ptr("  Jane@Example.com")})

	require.Nil(t, errs)
	assert.Nil(t, out.Name)
	require.NotNil(t, out.Email)
	assert.Equal(t, "jane@example.com", *out.Email)
}

func TestValidateUpdate_PresentFieldsKeepRules(t *testing.T) {
	_, errs := ValidateUpdate(domain.UserUpdate{Name: ptr("  "), Email: ptr("")})

	assert.Equal(t, FieldErrors{
		FieldName:  MsgNameRequired,
		FieldEmail: MsgEmailInvalid,
	}, errs)

	_, errs = ValidateUpdate(domain.UserUpdate{Email: ptr("not-an-email")})
	assert.True(t, errs.Has(FieldEmail))
	assert.False(t, errs.Has(FieldName))
}

func TestValidate_Deterministic(t *testing.T) {
	in := domain.UserCreate{Name: " A ", Email: " A@B.COM "}
	a, errsA := ValidateCreate(in)
	b, errsB := ValidateCreate(in)

	assert.Equal(t, a, b)
	assert.Equal(t, errsA, errsB)
}
