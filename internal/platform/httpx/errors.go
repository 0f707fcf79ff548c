// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Unauthorized is checked before NotFound so that ownership failures never
// leak whether another landlord's resource exists.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		Problem(w, http.StatusForbidden, "Unauthorized", "you do not own this resource")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Invalid Credentials", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrAlreadyExists):
		Problem(w, http.StatusConflict, "Already Exists", err.Error())
	case errors.Is(err, shared.ErrStateConflict):
		Problem(w, http.StatusConflict, "State Conflict", err.Error())
	case errors.Is(err, shared.ErrIllegalTransition):
		Problem(w, http.StatusUnprocessableEntity, "Illegal State Transition", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
