package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPrefixesCodes(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, Code("WIDGET_NOT_FOUND"), code)

	e := reg.New(code)
	assert.Equal(t, code, e.Code)
	assert.Equal(t, TypeNotFound, e.Type)
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus)
	assert.Equal(t, "Widget not found", e.Message)
}

func TestRegistryUnknownCodeFallsBack(t *testing.T) {
	reg := NewRegistry("WIDGET")

	e := reg.New("WIDGET_NEVER_REGISTERED")
	assert.Equal(t, TypeInternal, e.Type)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus)
}

func TestErrorIsMatchesByCode(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("CONFLICT", TypeConflict, http.StatusConflict, "Widget already exists")
	other := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.True(t, errors.Is(reg.New(code), reg.New(code)))
	assert.False(t, errors.Is(reg.New(code), reg.New(other)))
}

func TestErrorUnwrapsCause(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("STORE_FAILED", TypeInternal, http.StatusInternalServerError, "Failed to store widget")

	cause := errors.New("connection refused")
	e := reg.NewWithCause(code, cause)

	assert.True(t, errors.Is(e, cause))
	assert.Contains(t, e.Error(), "connection refused")
	assert.Contains(t, e.Error(), "WIDGET_STORE_FAILED")
}

func TestWithDetail(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("INVALID", TypeValidation, http.StatusBadRequest, "Invalid widget")

	e := reg.New(code).
		WithDetail("field", "name").
		WithDetails(map[string]any{"length": 3, "max": 2})

	require.NotNil(t, e.Details)
	assert.Equal(t, "name", e.Details["field"])
	assert.Equal(t, 3, e.Details["length"])
	assert.Equal(t, 2, e.Details["max"])
}

func TestToHTTPResponse(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("INVALID", TypeValidation, http.StatusBadRequest, "Invalid widget")

	e := reg.New(code).WithDetail("field", "name")
	resp := e.ToHTTPResponse()

	assert.Equal(t, Code("WIDGET_INVALID"), resp["code"])
	assert.Equal(t, "Invalid widget", resp["message"])
	assert.Equal(t, TypeValidation, resp["type"])
	require.Contains(t, resp, "details")

	// Details stay out of the body when absent.
	bare := reg.New(code).ToHTTPResponse()
	assert.NotContains(t, bare, "details")
}
