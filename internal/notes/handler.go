package notes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mehul/notes-app/backend/internal/api"
	"github.com/mehul/notes-app/backend/internal/auth"
	"github.com/mehul/notes-app/backend/internal/models"
	"github.com/mehul/notes-app/backend/internal/store"
)

// NoteStore defines the interface for note persistence. Every method is
// owner-scoped: a wrong-owner request and a nonexistent id both come back
// as store.ErrNotFound.
type NoteStore interface {
	Create(ctx context.Context, ownerID, title, content string, tags []string) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error)
	Update(ctx context.Context, ownerID, noteID string, patch store.NotePatch) (*models.Note, error)
	SetPinned(ctx context.Context, ownerID, noteID string, pinned bool) (*models.Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
	Search(ctx context.Context, ownerID, query string) ([]models.Note, error)
}

// Handler holds the note HTTP handlers.
type Handler struct {
	notes NoteStore
}

func NewHandler(notes NoteStore) *Handler {
	return &Handler{notes: notes}
}

// ownerID reads the verified snapshot placed by the auth middleware. The
// owner always comes from the token, never from the request body.
func ownerID(r *http.Request) (string, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		return "", false
	}
	return user.ID.Hex(), true
}

// Add creates a note for the current user.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req models.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Content == "" {
		api.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	note, err := h.notes.Create(r.Context(), owner, req.Title, req.Content, req.Tags)
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Note added successfully", api.Envelope{"note": note})
}

// Edit applies a partial update. Only provided fields change; an explicit
// isPinned:false unpins while an absent isPinned leaves pin state alone.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}
	noteID := chi.URLParam(r, "noteId")

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), owner, noteID, store.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if errors.Is(err, store.ErrEmptyPatch) {
		api.Error(w, http.StatusBadRequest, "No changes provided")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Note not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Note updated successfully", api.Envelope{"note": note})
}

// UpdatePinned toggles the pin flag; isPinned is required in the body.
func (h *Handler) UpdatePinned(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}
	noteID := chi.URLParam(r, "noteId")

	var req models.UpdatePinnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IsPinned == nil {
		api.Error(w, http.StatusBadRequest, "isPinned is required")
		return
	}

	note, err := h.notes.SetPinned(r.Context(), owner, noteID, *req.IsPinned)
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Note not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Note updated successfully", api.Envelope{"note": note})
}

// List returns all of the current user's notes, pinned first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}

	notes, err := h.notes.ListByOwner(r.Context(), owner)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	api.Success(w, "All notes retrieved successfully", api.Envelope{"notes": notes})
}

// Delete removes one of the current user's notes.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}
	noteID := chi.URLParam(r, "noteId")

	err := h.notes.Delete(r.Context(), owner, noteID)
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Note not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Note deleted successfully", nil)
}

// Search returns the current user's notes whose title or content contains
// the query, case-insensitively.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		api.Error(w, http.StatusBadRequest, "Search query is required")
		return
	}

	notes, err := h.notes.Search(r.Context(), owner, query)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	api.Success(w, "Notes matching the search query retrieved successfully", api.Envelope{"notes": notes})
}
