package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

func (h *HTTPHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Reviews.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		h.fail(w, r, "ListReviews", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in service.ReviewInput
	if !h.decode(w, r, &in) {
		return
	}

	out, err := h.svc.Reviews.Create(r.Context(), identity(r), chi.URLParam(r, "eventId"), in)
	if err != nil {
		h.fail(w, r, "CreateReview", err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Resp{Message: "Review created", Data: out})
}
