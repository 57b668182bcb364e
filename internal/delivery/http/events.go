package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

func (h *HTTPHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.svc.Events.List(r.Context(), models.EventFilter{
		Category:    q.Get("category"),
		Location:    q.Get("location"),
		Name:        q.Get("name"),
		OrganizerID: q.Get("organizer"),
	})
	if err != nil {
		h.fail(w, r, "ListEvents", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "GetEvent", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in service.EventInput
	if !h.decode(w, r, &in) {
		return
	}

	out, err := h.svc.Events.Create(r.Context(), identity(r), in)
	if err != nil {
		h.fail(w, r, "CreateEvent", err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Resp{Message: "Event created", Data: out})
}

func (h *HTTPHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var in service.EventInput
	if !h.decode(w, r, &in) {
		return
	}

	out, err := h.svc.Events.Update(r.Context(), identity(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "UpdateEvent", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Event updated", Data: out})
}

func (h *HTTPHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.Delete(r.Context(), identity(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "DeleteEvent", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Event deleted"})
}

func (h *HTTPHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Bookings.ListByEvent(r.Context(), identity(r), chi.URLParam(r, "eventId"))
	if err != nil {
		h.fail(w, r, "ListBookings", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}
