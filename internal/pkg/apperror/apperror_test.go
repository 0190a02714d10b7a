package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("missing", map[string]string{"titulo": "required"}), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("publicación no encontrada"), want: http.StatusNotFound},
		{name: "storage", err: Storage(errors.New("connection refused")), want: http.StatusInternalServerError},
		{name: "wrapped not found", err: fmt.Errorf("delete banner: %w", NotFound("x")), want: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestStorageSurfacesUnderlyingMessage(t *testing.T) {
	cause := errors.New("database is locked")
	err := Storage(cause)

	assert.Equal(t, "database is locked", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCodeAndDetails(t *testing.T) {
	err := fmt.Errorf("create: %w", Validation("bad", map[string]string{"imagen": "required"}))

	assert.Equal(t, CodeValidation, CodeOf(err))
	assert.Equal(t, map[string]string{"imagen": "required"}, DetailsOf(err))
	assert.Equal(t, CodeStorageUnavailable, CodeOf(errors.New("other")))
	assert.Nil(t, DetailsOf(errors.New("other")))
}
