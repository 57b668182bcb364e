package http

import (
	"errors"
	"net/http"

	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/service"
	pkgErrors "github.com/vogiaan1904/swiftseats/pkg/errors"
)

const (
	codeInvalidBody = 10000
	codeValidation  = 10001
)

var (
	errWebhook            = pkgErrors.NewBadRequestError(10100, "Webhook Error")
	errInvalidSessionData = pkgErrors.NewBadRequestError(10101, "Invalid Session Data")
	errReconcileFailed    = pkgErrors.NewHTTPError(http.StatusInternalServerError, 10102, "Failed to save payment or booking")

	errCheckoutRequest    = pkgErrors.NewBadRequestError(10200, "Invalid checkout request")
	errInsufficientSeats  = pkgErrors.NewHTTPError(http.StatusConflict, 10201, "Not enough seats remaining")
	errCheckoutFailed     = pkgErrors.NewHTTPError(http.StatusBadGateway, 10202, "Failed to create checkout session")
	errCheckoutNotFound   = pkgErrors.NewHTTPError(http.StatusNotFound, 10203, "Checkout session not found")
	errCheckoutUserDenied = pkgErrors.NewHTTPError(http.StatusForbidden, 10204, "userId does not match the authenticated user")

	errEventNotFound       = pkgErrors.NewHTTPError(http.StatusNotFound, 10300, "Event not found")
	errInvalidEvent        = pkgErrors.NewBadRequestError(10301, "Invalid event")
	errEventHasBookings    = pkgErrors.NewHTTPError(http.StatusConflict, 10302, "Event has recorded payments")
	errCapacityBelowBooked = pkgErrors.NewHTTPError(http.StatusConflict, 10303, "Capacity cannot be lower than booked seats")

	errInvalidRating   = pkgErrors.NewBadRequestError(10500, "Rating must be between 1 and 5")
	errAlreadyReviewed = pkgErrors.NewBadRequestError(10501, "You have already submitted a review for this event")

	errUnauthorized       = pkgErrors.NewHTTPError(http.StatusUnauthorized, 10400, "Unauthorized")
	errForbidden          = pkgErrors.NewHTTPError(http.StatusForbidden, 10401, "Forbidden")
	errUserNotFound       = pkgErrors.NewHTTPError(http.StatusNotFound, 10402, "User not found")
	errEmailTaken         = pkgErrors.NewHTTPError(http.StatusConflict, 10403, "Email already registered")
	errInvalidCredentials = pkgErrors.NewHTTPError(http.StatusUnauthorized, 10404, "Invalid email or password")
	errInvalidRole        = pkgErrors.NewBadRequestError(10405, "Invalid role")
)

func mapHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidSignature), errors.Is(err, service.ErrInvalidPayload):
		return errWebhook
	case errors.Is(err, service.ErrInvalidSessionData):
		return errInvalidSessionData
	case errors.Is(err, service.ErrReconcileFailed):
		return errReconcileFailed

	case errors.Is(err, service.ErrInvalidCheckoutRequest),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrPriceMismatch):
		return pkgErrors.NewBadRequestError(errCheckoutRequest.Code, err.Error())
	case errors.Is(err, service.ErrInsufficientSeats):
		return errInsufficientSeats
	case errors.Is(err, service.ErrCheckoutSessionFailed):
		return errCheckoutFailed
	case errors.Is(err, service.ErrCheckoutSessionNotFound):
		return errCheckoutNotFound

	case errors.Is(err, service.ErrEventNotFound):
		return errEventNotFound
	case errors.Is(err, service.ErrInvalidEvent):
		return pkgErrors.NewBadRequestError(errInvalidEvent.Code, err.Error())
	case errors.Is(err, service.ErrEventHasBookings):
		return errEventHasBookings
	case errors.Is(err, service.ErrCapacityBelowBooked):
		return errCapacityBelowBooked

	case errors.Is(err, service.ErrInvalidRating):
		return errInvalidRating
	case errors.Is(err, service.ErrAlreadyReviewed):
		return errAlreadyReviewed

	case errors.Is(err, service.ErrForbidden):
		return errForbidden
	case errors.Is(err, service.ErrUserNotFound):
		return errUserNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return errEmailTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, service.ErrInvalidRole):
		return errInvalidRole

	case errors.Is(err, auth.ErrTokenEmpty),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenInvalidClaims),
		errors.Is(err, auth.ErrTokenUnexpectedSignature):
		return errUnauthorized
	default:
		return err
	}
}
