package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassThrough(t *testing.T) {
	original := NewNotFound("Usuario no encontrado.")

	converted := ToDomainError(original)
	require.NotNil(t, converted)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorUnwrapsNestedDomainErrors(t *testing.T) {
	inner := NewUnauthorized("El usuario no esta autenticado.")
	wrapped := fmt.Errorf("request failed: %w", inner)

	converted := ToDomainError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, converted.HTTPStatus)
}

func TestToDomainErrorClassifiesUnknownErrors(t *testing.T) {
	converted := ToDomainError(errors.New("boom"))

	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	assert.Equal(t, "Error interno del servidor.", converted.Message)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestWrapKeepsTemplateIntact(t *testing.T) {
	base := NewDomainError("EMAIL_TAKEN", "El email se encuentra registrado.", http.StatusConflict, nil)
	cause := errors.New("duplicate key")

	wrapped := Wrap(base, cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, base.Err)
	assert.Equal(t, base.Code, wrapped.Code)
}

func TestDomainErrorMessageFormatting(t *testing.T) {
	plain := NewDomainError("X", "mensaje", http.StatusBadRequest, nil)
	assert.Equal(t, "mensaje", plain.Error())

	withCause := Wrap(plain, errors.New("cause"))
	assert.Equal(t, "mensaje: cause", withCause.Error())
}
