package types

import "time"

// Task is a planner entry.
type Task struct {
	// TaskID is a UUID v7, generated on creation.
	TaskID string `json:"task_id"`

	Title string `json:"title"`

	// Due is the due date; the zero time means no due date.
	Due time.Time `json:"due"`

	Done bool `json:"done"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDue reports whether the task carries a due date.
func (t *Task) HasDue() bool {
	return !t.Due.IsZero()
}

// Toggle flips the done flag and stamps UpdatedAt.
func (t *Task) Toggle(now time.Time) {
	t.Done = !t.Done
	t.UpdatedAt = now
}
