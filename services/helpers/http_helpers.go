package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"fanmeet-engine/internal/engineerrors"
	"fanmeet-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, engineerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, engineerrors.ErrMeetingNotFound):
		return http.StatusNotFound, "meeting not found"
	case errors.Is(err, engineerrors.ErrNoBids):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, engineerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, engineerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, engineerrors.ErrInvalidFirstBid):
		return http.StatusUnprocessableEntity, "first bid must equal the base price"
	case errors.Is(err, engineerrors.ErrInvalidIncrement):
		return http.StatusUnprocessableEntity, "bid increase must be a multiple of the bid step"
	case errors.Is(err, engineerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, engineerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction closed"
	case errors.Is(err, engineerrors.ErrNotParticipant):
		return http.StatusForbidden, "not a participant of this meeting"
	case errors.Is(err, engineerrors.ErrPastEndTime):
		return http.StatusGone, "meeting cannot start after its scheduled end"
	case errors.Is(err, engineerrors.ErrMeetingEnded):
		return http.StatusGone, "meeting ended"
	case errors.Is(err, engineerrors.ErrTooEarly):
		return http.StatusConflict, "too early for this transition"
	case errors.Is(err, engineerrors.ErrInvalidTransition):
		return http.StatusConflict, "transition not allowed"
	case errors.Is(err, engineerrors.ErrConflict):
		return http.StatusConflict, "record changed concurrently, re-read and retry"
	case errors.Is(err, engineerrors.ErrPaymentFailed):
		return http.StatusBadGateway, "payment service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondServiceError maps err and sends it with the handler's log context
func RespondServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.RespondError(c, handlerName, status, message, fmt.Errorf("%s: %w", message, err), fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
