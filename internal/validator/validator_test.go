package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=10"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Message: "hi"})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "not-an-email", Message: ""})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "message")
	assert.Equal(t, "must be a valid email address", verr.Errors["email"])
	assert.Equal(t, "this field is required", verr.Errors["message"])
}

func TestValidate_MaxLength(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Message: "way too long for this"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "must be at most 10 characters long", verr.Errors["message"])
}

func TestValidate_UUIDRule(t *testing.T) {
	type withUUID struct {
		ID string `json:"id" validate:"required,uuid"`
	}

	v := New()
	err := v.Validate(&withUUID{ID: "not-a-uuid"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "must be a valid UUID", verr.Errors["id"])

	assert.NoError(t, v.Validate(&withUUID{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}))
}
