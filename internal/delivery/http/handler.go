package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/service"
	pkgErrors "github.com/vogiaan1904/swiftseats/pkg/errors"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

const maxBodyBytes = 1 << 20

type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

type Services struct {
	Notifications service.NotificationService
	Checkout      service.CheckoutService
	Events        service.EventService
	Bookings      service.BookingService
	Reviews       service.ReviewService
	Users         service.UserService
	Profiles      service.ProfileService
}

type HTTPHandler struct {
	svc            Services
	tokens         TokenParser
	webhookTimeout time.Duration
	l              logger.Logger
	validator      *validator.Validate
}

func NewHTTPHandler(svc Services, tokens TokenParser, webhookTimeout time.Duration, l logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:            svc,
		tokens:         tokens,
		webhookTimeout: webhookTimeout,
		l:              l,
		validator:      validator.New(),
	}
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.HTTPLogger(h.l))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/webhook", h.Webhook)

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/events", h.ListEvents)
		r.Get("/events/{id}", h.GetEvent)
		r.Get("/rating/{eventId}", h.ListReviews)
		r.Get("/user/events", h.ListUserEvents)
		r.Get("/user/{id}", h.GetProfile)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Post("/checkout", h.CreateCheckout)
			r.Get("/checkout/sessions", h.ListCheckoutSessions)
			r.Get("/checkout/sessions/{id}", h.GetCheckoutSession)

			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
			r.Get("/bookings/{eventId}", h.ListBookings)

			r.Post("/rating/{eventId}", h.CreateReview)

			r.Get("/user/balance", h.GetBalance)
		})
	})

	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "swiftseats",
	})
}

// decode reads a JSON body into dst and runs struct validation. It writes the
// error response itself and reports whether the handler may continue.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.l.Debugf(r.Context(), "delivery.http.decode: %v", err)
		response.JSON(w, http.StatusBadRequest, response.Resp{
			ErrorCode: codeInvalidBody,
			Message:   "Invalid request body",
		})
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			response.ValidationError(w, codeValidation, details)
			return false
		}
		response.ValidationError(w, codeValidation, err.Error())
		return false
	}
	return true
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, method string, err error) {
	mapped := mapHTTPError(err)

	var httpErr *pkgErrors.HTTPError
	if errors.As(mapped, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError {
		h.l.Debugf(r.Context(), "delivery.http.%s: %v", method, err)
	} else {
		h.l.Errorf(r.Context(), "delivery.http.%s: %v", method, err)
	}
	response.Error(w, mapped)
}
