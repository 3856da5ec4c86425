package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
	Role     string `json:"role" validate:"oneof=donor recipient provider admin"`
}

type card struct {
	CVV string `json:"cvv" validate:"omitempty,numeric,min=3,max=4"`
}

type payment struct {
	Amount float64 `json:"amount" validate:"gte=1"`
	Card   *card   `json:"cardDetails" validate:"omitempty"`
}

func TestValidateStructPasses(t *testing.T) {
	assert.NoError(t, ValidateStruct(signup{Email: "a@x.com", Password: "Passw0rd!", Role: "donor"}, nil))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(signup{Email: "nope", Password: "short", Role: "root"}, nil)
	appErr, ok := AsAppError(err)
	require.True(t, ok)

	require.Len(t, appErr.Fields, 3)
	assert.Equal(t, "email", appErr.Fields[0].Field)
	assert.Equal(t, "must be a valid email", appErr.Fields[0].Msg)
	assert.Equal(t, "password", appErr.Fields[1].Field)
	assert.Equal(t, "password must be at least 8 characters", appErr.Fields[1].Msg)
	assert.Equal(t, "role", appErr.Fields[2].Field)
}

func TestValidateStructOverridesNestedMessage(t *testing.T) {
	err := ValidateStruct(payment{Amount: 0.5, Card: &card{CVV: "12"}}, Messages{
		"amount":          "Amount must be at least $1",
		"cardDetails.cvv": "Invalid CVV",
	})
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "Amount must be at least $1", appErr.Message)
	assert.Equal(t, "cardDetails.cvv", appErr.Fields[1].Field)
	assert.Equal(t, "Invalid CVV", appErr.Fields[1].Msg)
}

type account struct {
	Role string `json:"role" validate:"role"`
}

func TestValidateStructRole(t *testing.T) {
	for _, r := range []string{"donor", "recipient", "provider", "admin"} {
		assert.NoError(t, ValidateStruct(account{Role: r}, nil), r)
	}

	err := ValidateStruct(account{Role: "superuser"}, nil)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "role", appErr.Fields[0].Field)
	assert.Equal(t, "role must be one of: donor, recipient, provider, admin", appErr.Fields[0].Msg)
}
