package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamtempo/engage-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic code.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrDuplicateAnswer),
		errors.Is(err, services.ErrDuplicateReflection),
		errors.Is(err, services.ErrThemeSessionExists):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrSessionNotAlive),
		errors.Is(err, services.ErrCompanyMismatch),
		errors.Is(err, services.ErrQuestionNotInSession),
		errors.Is(err, services.ErrOptionNotApplicable),
		errors.Is(err, services.ErrQuestionNotAnswered),
		errors.Is(err, services.ErrSessionChronology),
		errors.Is(err, services.ErrSessionStartsInPast),
		errors.Is(err, services.ErrNoValidOptions):
		RespondError(c, http.StatusUnprocessableEntity, "validation_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
