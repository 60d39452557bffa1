package model

import (
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type RemarkStatus string

const (
	RemarkPending   RemarkStatus = "pending"
	RemarkAddressed RemarkStatus = "addressed"
)

// Note is an append-only audit entry. Notes are never edited or removed.
type Note struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

type Remark struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	AddedBy string       `json:"addedBy"`
	AddedAt time.Time    `json:"addedAt"`
	Status  RemarkStatus `json:"status"`
}

type VoteKind string

const (
	VoteDelete VoteKind = "delete"
	VoteRedo   VoteKind = "redo"
)

func ValidVoteKind(k VoteKind) bool {
	return k == VoteDelete || k == VoteRedo
}

// Votes holds the two independent vote sets. A user appears at most once
// per set.
type Votes struct {
	Delete []string `json:"delete"`
	Redo   []string `json:"redo"`
}

func (v *Votes) set(kind VoteKind) *[]string {
	if kind == VoteDelete {
		return &v.Delete
	}
	return &v.Redo
}

func (v *Votes) Count(kind VoteKind) int {
	return len(*v.set(kind))
}

func (v *Votes) Has(kind VoteKind, userID string) bool {
	for _, id := range *v.set(kind) {
		if id == userID {
			return true
		}
	}
	return false
}

// Toggle adds the user's vote, or retracts it when already present.
// Reports whether the vote is present after the call.
func (v *Votes) Toggle(kind VoteKind, userID string) bool {
	s := v.set(kind)
	for i, id := range *s {
		if id == userID {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return false
		}
	}
	*s = append(*s, userID)
	return true
}

type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	AssignedTo  []string   `gorm:"serializer:json" json:"assignedTo"`
	CreatedBy   string     `gorm:"size:36;not null" json:"createdBy"`
	DueDate     time.Time  `json:"dueDate"`
	Priority    Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	Status      TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Notes       []Note     `gorm:"serializer:json" json:"notes"`
	Remarks     []Remark   `gorm:"serializer:json" json:"remarks"`
	Votes       Votes      `gorm:"serializer:json" json:"votes"`

	InProgressBy *string    `gorm:"size:36" json:"inProgressBy,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedBy  *string    `gorm:"size:36" json:"completedBy,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`

	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Task) IsAssigned(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// TaskView is the response-side projection of a task, annotated relative
// to the requesting identity. Never persisted.
type TaskView struct {
	Task
	IsAssignedToCurrentUser bool `json:"isAssignedToCurrentUser"`
}

func NewTaskView(t Task, actorID string) TaskView {
	return TaskView{Task: t, IsAssignedToCurrentUser: t.IsAssigned(actorID)}
}
