package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Code:       "not_found",
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrRemarkNotFound = &Exception{
	Code:       "not_found",
	Message:    "remark not found",
	StatusCode: http.StatusNotFound,
}

var ErrUserNotFound = &Exception{
	Code:       "not_found",
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}
