package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsIdentity(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("create batch: %w", Wrap(ErrPersistence, cause))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "connection refused", appErr.Details())
	assert.Equal(t, "Database error: connection refused", appErr.Error())
}

func TestStatus(t *testing.T) {
	cases := map[error]int{
		ErrValidation:                           http.StatusBadRequest,
		New(AlreadyApproved, "X", "approved"):   http.StatusBadRequest,
		ErrNotFound:                             http.StatusNotFound,
		New(Auth, "NO_AUTH_HEADER", "no token"): http.StatusUnauthorized,
		New(Forbidden, "FORBIDDEN_ROLE", "no"):  http.StatusForbidden,
		ErrPersistence:                          http.StatusInternalServerError,
		errors.New("boom"):                      http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, Status(err), err.Error())
	}
}
