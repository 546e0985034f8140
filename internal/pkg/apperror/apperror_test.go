package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInternal, http.StatusInternalServerError},
		{KindInvalidArgument, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.kind, "msg").HTTPStatus())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row scan failed")
	err := Wrap(cause, KindInternal, "could not load booking")

	assert.Equal(t, "could not load booking", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	sentinel := New(KindNotFound, "thing not found")
	wrapped := fmt.Errorf("loading thing: %w", sentinel)

	var appErr *AppError
	assert.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.ErrorIs(t, wrapped, sentinel)
}
