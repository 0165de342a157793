package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumarise-backend/apperrors"
)

func respond(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, nil, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErrorValidationDetails(t *testing.T) {
	err := apperrors.New(apperrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"price": "A valid number is required."})

	status, body := respond(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, map[string]any{"price": "A valid number is required."}, body["details"])
}

func TestRespondErrorHidesDetailsWhenNotAllowed(t *testing.T) {
	err := fmt.Errorf("load: %w", apperrors.NotFound("room").WithDetails("secret"))

	status, body := respond(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "room not found", body["error"])
	assert.NotContains(t, body, "details")
}

func TestRespondErrorUnclassifiedIsGeneric(t *testing.T) {
	status, body := respond(t, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}
