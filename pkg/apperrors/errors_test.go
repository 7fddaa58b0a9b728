package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperrors.Error
		status int
	}{
		{"not found", apperrors.NotFound("produtor não encontrado"), http.StatusNotFound},
		{"forbidden", apperrors.Forbidden(""), http.StatusForbidden},
		{"conflict", apperrors.Conflict("CPF/CNPJ já está em uso"), http.StatusConflict},
		{"bad request", apperrors.BadRequest("role inválida"), http.StatusBadRequest},
		{"internal", apperrors.New(apperrors.KindInternal, "falha", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestKindOf(t *testing.T) {
	err := apperrors.Conflict("conflito")
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Erros embrulhados ainda são reconhecidos
	wrapped := fmt.Errorf("camada extra: %w", err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(wrapped))

	// Erros fora da taxonomia caem em KindInternal
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(errors.New("falha de conexão")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := apperrors.Wrap(apperrors.KindConflict, "CPF/CNPJ já está em uso", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CPF/CNPJ")
	assert.Contains(t, err.Error(), cause.Error())
}

func TestIsKind(t *testing.T) {
	assert.True(t, apperrors.IsKind(apperrors.Forbidden(""), apperrors.KindForbidden))
	assert.False(t, apperrors.IsKind(nil, apperrors.KindForbidden))
	assert.False(t, apperrors.IsKind(apperrors.NotFound(""), apperrors.KindForbidden))
}
