package errors

import "net/http"

func validation(message string) *Exception {
	return &Exception{
		Code:       "validation",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

var (
	ErrTitleRequired       = validation("title is required")
	ErrDescriptionRequired = validation("description is required")
	ErrAssigneesRequired   = validation("at least one assignee is required")
	ErrTextRequired        = validation("text is required")
	ErrTextTooLong         = validation("text exceeds the maximum length")
	ErrInvalidPriority     = validation("priority must be low, medium or high")
	ErrProgressOutOfRange  = validation("progress must be between 0 and 100")
	ErrInvalidVoteKind     = validation("vote type must be delete or redo")
	ErrInvalidRemarkStatus = validation("remark status must be pending or addressed")
)
