package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a single note document, always owned by exactly one user.
// UserID is set at creation and never reassigned.
type Note struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Tags      []string           `json:"tags" bson:"tags"`
	IsPinned  bool               `json:"isPinned" bson:"is_pinned"`
	UserID    string             `json:"userId" bson:"user_id"`
	CreatedOn time.Time          `json:"createdOn" bson:"created_on"`
}

// AddNoteRequest is the JSON body for POST /add-note.
type AddNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest is the JSON body for PUT /edit-note/{noteId}.
// IsPinned is a pointer so an explicit false can be told apart from an
// absent field: false is a change, nil leaves the pin state alone.
type UpdateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned *bool    `json:"isPinned"`
}

// UpdatePinnedRequest is the JSON body for PUT /update-note-pinned/{noteId}.
type UpdatePinnedRequest struct {
	IsPinned *bool `json:"isPinned"`
}
