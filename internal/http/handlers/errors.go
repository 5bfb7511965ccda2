package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

// respondServiceError maps service sentinels to HTTP statuses so each handler
// does not repeat the same switch.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.RespondError(c, http.StatusNotFound, "user_not_found", err)
	case errors.Is(err, services.ErrCertificateMissing):
		response.RespondError(c, http.StatusNotFound, "certificate_not_found", err)
	case errors.Is(err, services.ErrEmailInUse):
		response.RespondError(c, http.StatusConflict, "email_in_use", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, services.ErrNotAuthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, services.ErrInvalidSubmission):
		response.RespondError(c, http.StatusBadRequest, "invalid_submission", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
