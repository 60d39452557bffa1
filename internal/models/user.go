package model

import "time"

type Role string

const (
	RoleCEO Role = "CEO"
	RoleCTO Role = "CTO"
	RoleCFO Role = "CFO"
	RoleCOO Role = "COO"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"not null" json:"fullName"`
	Role      Role      `gorm:"type:varchar(10);not null" json:"role"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the authenticated caller as supplied by the upstream auth
// collaborator. The core trusts it fully.
type Identity struct {
	UserID   string
	FullName string
	Role     Role
}

// UserStatus is the user listing projection with the live presence flag.
type UserStatus struct {
	User
	IsOnline bool `json:"isOnline"`
}

type LeaderboardEntry struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Role           Role   `json:"role"`
	TasksCompleted int    `json:"tasksCompleted"`
}
