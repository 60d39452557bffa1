package errors

import "net/http"

var ErrStoreUnavailable = &Exception{
	Code:       "store_unavailable",
	Message:    "task store is unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
