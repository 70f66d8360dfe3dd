package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrMissingSource, http.StatusServiceUnavailable},
		{ErrDataValidation, http.StatusUnprocessableEntity},
		{ErrInvalidRequest, http.StatusBadRequest},
		{ErrInvalidFormat, http.StatusBadRequest},
		{ErrInternalServer, http.StatusInternalServerError},
		{"XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"field": "revenue"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
			assert.Equal(t, map[string]any{"field": "revenue"}, body.Details)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(errors.New("falhou"), ErrDataValidation)
	assert.Equal(t, ErrDataValidation, apiErr.Code)
	assert.Equal(t, "DATA_002: falhou", apiErr.Error())

	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDataValidation).Code)
}
