package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("already exists", nil)

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	inner := NewPendingVerification()
	wrapped := fmt.Errorf("login failed: %w", inner)

	mapped := ToDomainError(wrapped)
	require.NotNil(t, mapped)
	assert.Equal(t, "AUTHORITY_NOT_VERIFIED", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestIsCode(t *testing.T) {
	err := NewNotFound("person", nil)

	assert.True(t, IsCode(err, "NOT_FOUND"))
	assert.False(t, IsCode(err, "FORBIDDEN"))
	assert.False(t, IsCode(errors.New("plain"), "NOT_FOUND"))
	assert.False(t, IsCode(nil, "NOT_FOUND"))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
}
