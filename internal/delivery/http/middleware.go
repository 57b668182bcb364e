package http

import (
	"net/http"
	"strings"

	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/pkg/response"
)

func (h *HTTPHandler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			response.Error(w, errUnauthorized)
			return
		}

		id, err := h.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			h.l.Debugf(r.Context(), "delivery.http.authenticate: %v", err)
			response.Error(w, errUnauthorized)
			return
		}

		ctx := h.l.With(auth.WithIdentity(r.Context(), id), "user_id", id.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}
