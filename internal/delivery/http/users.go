package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}

	u, err := h.svc.Users.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Register", err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Resp{Message: "User registered", Data: u})
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !h.decode(w, r, &in) {
		return
	}

	out, err := h.svc.Users.Login(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Login", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Users.GetBalance(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, "GetBalance", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

func (h *HTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "GetProfile", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}

// ListUserEvents lists the events organized by ?userId=.
func (h *HTTPHandler) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		response.ValidationError(w, codeValidation, map[string]string{"userId": "required"})
		return
	}

	out, err := h.svc.Events.List(r.Context(), models.EventFilter{OrganizerID: userID})
	if err != nil {
		h.fail(w, r, "ListUserEvents", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Resp{Message: "Success", Data: out})
}
