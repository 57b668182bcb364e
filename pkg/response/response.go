package response

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgErrors "github.com/vogiaan1904/swiftseats/pkg/errors"
)

type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// JSON writes data as the response body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error renders err using the Resp envelope. Anything that is not an
// *HTTPError becomes a 500.
func Error(w http.ResponseWriter, err error) {
	status, resp := parseHttpError(err)
	JSON(w, status, resp)
}

// ValidationError renders a 400 carrying per-field details.
func ValidationError(w http.ResponseWriter, code int, details any) {
	JSON(w, http.StatusBadRequest, Resp{
		ErrorCode: code,
		Message:   "Validation failed",
		Errors:    details,
	})
}

func parseHttpError(err error) (int, Resp) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		statusCode := httpErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}

		return statusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		}
	}

	return http.StatusInternalServerError, Resp{
		ErrorCode: 500,
		Message:   "Internal server error",
	}
}
