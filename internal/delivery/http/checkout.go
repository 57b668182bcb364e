package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

func (h *HTTPHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCheckoutInput
	if !h.decode(w, r, &in) {
		return
	}

	id := identity(r)
	if in.UserID != id.UserID {
		h.l.Warnf(r.Context(), "delivery.http.CreateCheckout: body user %s != subject %s", in.UserID, id.UserID)
		response.Error(w, errCheckoutUserDenied)
		return
	}
	in.Origin = r.Header.Get("Origin")

	out, err := h.svc.Checkout.CreateSession(r.Context(), in)
	if err != nil {
		h.fail(w, r, "CreateCheckout", err)
		return
	}

	response.JSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) GetCheckoutSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Checkout.GetSession(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "GetCheckoutSession", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) ListCheckoutSessions(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Checkout.ListSessions(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, "ListCheckoutSessions", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}
