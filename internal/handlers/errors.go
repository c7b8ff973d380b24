package handlers

import (
	"errors"

	"isml_backend/internal/apperr"
)

// notFoundAs swaps a generic not-found for the caller's more specific one.
func notFoundAs(err error, specific *apperr.Error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Wrap(specific, err)
	}
	return err
}
