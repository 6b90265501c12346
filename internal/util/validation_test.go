package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string   `json:"username" validate:"required,min=3,max=30,username"`
	Bio      *string  `json:"bio" validate:"omitempty,max=5"`
	Images   []string `json:"swipeImages" validate:"len=3"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(sample{Username: "alice_01.x", Images: []string{"a", "b", "c"}})
		assert.NoError(t, err)
	})

	t.Run("per field messages", func(t *testing.T) {
		long := "way too long"
		err := ValidateStruct(sample{Username: "a!", Bio: &long, Images: []string{"a", "b"}})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "username")
		assert.Contains(t, verr.Fields, "bio")
		assert.Equal(t, "please provide exactly 3 swipeImages", verr.Fields["swipeImages"])
	})

	t.Run("bad characters", func(t *testing.T) {
		err := ValidateStruct(sample{Username: "bad name", Images: []string{"a", "b", "c"}})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "username can only contain letters, numbers, underscores, or dots", verr.Fields["username"])
	})
}

func TestValidationError_ErrorIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "first, second", err.Error())
}
