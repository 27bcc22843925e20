package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/dto"
)

// respondError maps a service error onto its HTTP status. Every domain
// sentinel has a fixed status so handlers never guess; anything unmapped is
// an internal error and its detail is not leaked to the client.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch {
	case errors.Is(err, domain.ErrProviderNotConfigured):
		status = http.StatusNotImplemented
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordPolicy),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrIncompleteProfile),
		errors.Is(err, domain.ErrCodeExchangeFailed),
		errors.Is(err, domain.ErrNoVerifiedEmail):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenReused),
		errors.Is(err, domain.ErrAudienceMismatch),
		errors.Is(err, domain.ErrProviderError):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountDeactivated):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrProviderConflict):
		status = http.StatusConflict
	}

	if status != http.StatusInternalServerError {
		detail = err.Error()
	}

	c.JSON(status, dto.ErrorResponse{Detail: detail})
}
