package models

import "time"

const (
	GoalStatusPending    = "pending"
	GoalStatusInProgress = "in-progress"
	GoalStatusCompleted  = "completed"
)

type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       *GoalOwner `json:"owner,omitempty"`
}

// GoalOwner is attached to admin goal listings only.
type GoalOwner struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email string  `json:"email"`
}

type CreateGoalRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed"`
}
