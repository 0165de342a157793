package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("store gallery image: %w", Wrap(CodeDependency, cause, "storage write failed"))

	typed := As(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeDependency, typed.Code())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeDependency))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.True(t, MetadataFor(CodeValidation).DetailsAllowed)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("nope")).HTTPStatus)
}

func TestNilErrorIsSafe(t *testing.T) {
	var e *Error
	assert.Equal(t, CodeInternal, e.Code())
	assert.Empty(t, e.Message())
	assert.Nil(t, e.WithDetails("x"))
	assert.Nil(t, As(nil))
}
