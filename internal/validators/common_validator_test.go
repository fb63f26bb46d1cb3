package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=passenger driver"`
	ID    string `validate:"omitempty,object_id"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "paula@example.com", Role: "passenger"})
	assert.Empty(t, errs)
}

func TestValidateStructErrors(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "not-an-email", Role: "pilot", ID: "zzz"})
	require.Len(t, errs, 3)

	details := errs.Details()
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be one of: passenger driver", details["role"])
	assert.Equal(t, "must be a valid object id", details["id"])
}

func TestValidateStructUsesJSONFieldNames(t *testing.T) {
	type taggedRequest struct {
		RecipientID string `json:"recipient_id" validate:"required,object_id"`
	}

	errs := ValidateStruct(&taggedRequest{RecipientID: "zzz"})
	require.Len(t, errs, 1)
	assert.Equal(t, "must be a valid object id", errs.Details()["recipient_id"])
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Role: "passenger"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs.Error(), "email")
}
