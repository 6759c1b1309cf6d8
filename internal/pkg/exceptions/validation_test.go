package exceptions

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signupProbe struct {
	Username string `validate:"required,min=3"`
	Gender   string `validate:"omitempty,oneof=male female other"`
}

func TestFormatFirstValidationError(t *testing.T) {
	validate := validator.New()

	t.Run("Required Field", func(t *testing.T) {
		err := validate.Struct(signupProbe{})
		assert.Equal(t, "username is required", FormatFirstValidationError(err))
	})

	t.Run("Min With Param", func(t *testing.T) {
		err := validate.Struct(signupProbe{Username: "ab"})
		assert.Equal(t, "username must be at least 3 characters long", FormatFirstValidationError(err))
	})

	t.Run("Oneof Lists Options", func(t *testing.T) {
		err := validate.Struct(signupProbe{Username: "alice", Gender: "x"})
		assert.Equal(t, "gender must be one of male, female, other", FormatFirstValidationError(err))
	})

	t.Run("Non Validation Error", func(t *testing.T) {
		assert.Equal(t, "failed to process your request", FormatFirstValidationError(errors.New("boom")))
	})
}

func TestFormatAllValidationErrors(t *testing.T) {
	validate := validator.New()
	err := validate.Struct(signupProbe{Username: "ab", Gender: "x"})

	assert.Equal(t, "username must be at least 3 characters long, gender must be one of male, female, other", FormatAllValidationErrors(err))
}

func TestBuildNewCustomErrorKeepsLocationTrail(t *testing.T) {
	inner := ErrPostgresDBFindData(errors.New("connection refused"))
	outer := ErrUserNotExist(inner)

	assert.Equal(t, 404, outer.StatusCode)
	assert.Len(t, outer.Locations, 2)
	assert.Contains(t, outer.DevMessage, "connection refused")
	assert.Contains(t, outer.Error(), "user not exists")
}
