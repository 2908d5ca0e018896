package handlers

import "github.com/danielgtaylor/huma/v2"

// statusError is the error body shared by every endpoint: the HTTP status
// mirrored into the body plus a single client-safe message. Internal error
// detail stays in the logs.
type statusError struct {
	Code    int    `json:"code"    doc:"HTTP status code"`
	Message string `json:"error"   doc:"Error message"`
}

func (e *statusError) GetStatus() int {
	return e.Code
}

func (e *statusError) Error() string {
	return e.Message
}

// ContentType keeps error responses as plain JSON rather than problem+json.
func (e *statusError) ContentType(string) string {
	return "application/json"
}

// UseStatusErrors installs statusError as the API-wide error model.
func UseStatusErrors() {
	huma.NewError = func(status int, msg string, _ ...error) huma.StatusError {
		return &statusError{Code: status, Message: msg}
	}
}
