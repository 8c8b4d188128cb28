package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Amount   int    `json:"amount" validate:"gt=0"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Email: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	details := Details(err)
	assert.Equal(t, "username is required", details["username"])
	assert.Equal(t, "email must be a valid email address", details["email"])
	assert.Equal(t, "amount must be greater than 0", details["amount"])
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(signup{Username: "ada", Email: "ada@example.com", Amount: 1}))
	assert.Nil(t, Details(nil))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Led a team & shipped", SanitizeText("  <b>Led</b> a team &amp; shipped\x00 "))
	assert.Equal(t, "hi", SanitizeText("<script>alert(1)</script>hi"))
	assert.Equal(t, "5 > 3", SanitizeText("5 > 3"))
}
