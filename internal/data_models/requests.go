package dto

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  []string  `json:"assignedTo"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
}

type ActionRequest struct {
	Action string `json:"action"`
}

type ProgressRequest struct {
	Progress *int `json:"progress"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type RemarkStatusRequest struct {
	Status string `json:"status"`
}

type VoteRequest struct {
	VoteType string `json:"voteType"`
}
