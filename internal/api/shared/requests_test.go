package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title  string  `json:"title"  validate:"required"`
	Status *string `json:"status" validate:"omitempty,oneof=pending complete"`
}

func TestDecodeJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))

	var req sampleRequest
	require.NoError(t, DecodeJSON(w, r, &req))
	assert.Equal(t, "x", req.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	assert.Error(t, DecodeJSON(w, r, &req))
}

func TestValidationDetails(t *testing.T) {
	bad := "archived"
	err := ValidateRequest(sampleRequest{Status: &bad})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 2)
	assert.Equal(t, FieldError{Field: "title", Message: "is required"}, details[0])
	assert.Equal(t, "status", details[1].Field)
	assert.Contains(t, details[1].Message, "pending complete")

	assert.NoError(t, ValidateRequest(sampleRequest{Title: "ok"}))

	derr := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	assert.Equal(t, []FieldError{{Field: "title", Message: "cannot be empty"}}, ValidationDetails(derr))

	assert.Nil(t, ValidationDetails(assert.AnError))
}
