package errors

import "net/http"

var ErrNotAssigned = &Exception{
	Code:       "forbidden",
	Message:    "you are not assigned to this task",
	StatusCode: http.StatusForbidden,
}

var ErrRoleForbidden = &Exception{
	Code:       "forbidden",
	Message:    "your role is not permitted to perform this operation",
	StatusCode: http.StatusForbidden,
}
