package errors

import (
	"fmt"
	"net/http"
)

// InvalidTransition reports a (status, action) pair the state machine
// rejects. The message echoes the received action and what would have
// been allowed, so callers can render a precise message.
func InvalidTransition(action, allowed string) *Exception {
	return &Exception{
		Code:       "invalid_transition",
		Message:    fmt.Sprintf("invalid action %q: allowed: %s", action, allowed),
		StatusCode: http.StatusBadRequest,
	}
}
