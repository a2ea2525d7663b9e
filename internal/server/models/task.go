package models

import (
	"strings"
	"time"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask is the create payload. Any owner supplied by the client is
// dropped during decoding; the owner always comes from the caller identity.
type NewTask struct {
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}

// Validate trims the description and checks the field rules.
func (t *NewTask) Validate() error {
	t.Description = strings.TrimSpace(t.Description)
	return validateStruct(t)
}

// AllowedTaskUpdates lists the keys accepted by a task PATCH.
var AllowedTaskUpdates = []string{"description", "completed"}

// TaskPatch holds the fields present in a task PATCH body.
type TaskPatch struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Apply copies the present fields onto t and validates the result.
func (p TaskPatch) Apply(t *Task) error {
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return validateStruct(&NewTask{Description: t.Description, Completed: t.Completed})
}
