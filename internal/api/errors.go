package api

import "fmt"

// Error is a failure reported by the materials service. Code and Message come
// from the service's error envelope; Status is the HTTP status of the
// response that carried it.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// UserMessage returns the text suitable for a transient notice: the backend
// message when available, a generic fallback otherwise.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "materials service request failed"
}
