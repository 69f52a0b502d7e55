package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		status  int
		code    string
		message string
	}{
		{http.StatusNotFound, ErrCodeNotFound, "resource not found"},
		{http.StatusUnprocessableEntity, ErrCodeUnprocessable, "unprocessable"},
		{http.StatusBadRequest, ErrCodeBadRequest, "bad request"},
		{http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.status)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.status, body.Error)
		assert.Equal(t, tc.code, body.Code)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestMessageForUnknownStatus(t *testing.T) {
	assert.Equal(t, "Conflict", MessageFor(http.StatusConflict))
	assert.Equal(t, ErrCodeInternalError, CodeFor(http.StatusConflict))
}
