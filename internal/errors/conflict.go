package errors

import "net/http"

var ErrConflict = &Exception{
	Code:       "conflict",
	Message:    "concurrent update conflict, retry the operation",
	StatusCode: http.StatusConflict,
}
