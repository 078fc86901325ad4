package types

import "time"

// Note is a free-form text note kept by the notes tool.
type Note struct {
	// NoteID is a UUID v7, generated on creation.
	NoteID string `json:"note_id"`

	Title string `json:"title"`
	Body  string `json:"body"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
