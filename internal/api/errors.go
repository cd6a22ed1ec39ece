package api

import (
	"errors"
	"net/http"

	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/service/auth"
	"github.com/jwhitfield/folio-api/internal/store"
)

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
// Unrecognized errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Store errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Domain validation errors
	case isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError reports whether err is one of the domain entity
// validation errors, all of which indicate bad client input.
func isDomainValidationError(err error) bool {
	validationErrors := []error{
		domain.ErrEmptyProjectTitle,
		domain.ErrProjectTitleTooLong,
		domain.ErrEmptyProjectSlug,
		domain.ErrEmptyProjectSummary,
		domain.ErrInvalidProjectURL,
		domain.ErrEmptyMessageName,
		domain.ErrEmptyMessageBody,
		domain.ErrMessageBodyTooLong,
		domain.ErrInvalidMessageStatus,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
