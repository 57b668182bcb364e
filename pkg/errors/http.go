package errors

import "net/http"

// HTTPError is a business error that knows how it is rendered over HTTP.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func NewHTTPError(statusCode int, code int, message string) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewBadRequestError(code int, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

func (e HTTPError) Error() string {
	return e.Message
}
