package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/upstream"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var validationErrors = []error{
	domain.ErrEmailRequired,
	domain.ErrInvalidEmail,
	domain.ErrPasswordRequired,
	domain.ErrPasswordTooShort,
	domain.ErrNameRequired,
	domain.ErrPhoneRequired,
	domain.ErrInvalidPhone,
	domain.ErrInvalidOTP,
	domain.ErrInvalidHours,
	domain.ErrLogMessageEmpty,
	domain.ErrGoalTitleEmpty,
	domain.ErrInvalidTargetDays,
	domain.ErrInvalidProgress,
	domain.ErrRoutineFieldsRequired,
	domain.ErrInvalidTimeRange,
	domain.ErrInvalidClockTime,
	domain.ErrUnknownWeekday,
	domain.ErrEntryIndexOutOfRange,
	domain.ErrContactMessageEmpty,
	services.ErrInvalidMonth,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, upstream.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusBadRequest
		}
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// handleError is the single place mapping errors to responses.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := statusFor(err)
	message := domain.UserMessage(err)

	var op *domain.OpError
	if status == http.StatusInternalServerError && !errors.As(err, &op) {
		message = "internal server error"
	}

	body := gin.H{"error": message}
	if status == http.StatusUnauthorized {
		body["redirect"] = middleware.AuthPath
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

func currentStore(c *gin.Context) (*session.Store, bool) {
	store, ok := middleware.GetStore(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context missing"})
		return nil, false
	}
	return store, true
}
