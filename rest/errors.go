package rest

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a structured error returned by the backend's REST layer.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
}

// missingFunctionCode is the code PostgREST emits when a remote
// procedure is not present in the exposed schema.
const missingFunctionCode = "PGRST202"

// IsMissingFunction reports whether err indicates that the requested
// remote procedure does not exist on the backend.
func IsMissingFunction(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == missingFunctionCode {
		return true
	}
	return strings.Contains(apiErr.Message, "Could not find the function")
}
