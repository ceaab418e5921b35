package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mehul/notes-app/backend/internal/api"
	"github.com/mehul/notes-app/backend/internal/models"
	"github.com/mehul/notes-app/backend/internal/store"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	CreateUser(ctx context.Context, fullName, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds the account HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenManager
}

func NewHandler(users UserStore, tokens *TokenManager) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Register creates a new account and logs it in.
//
// A duplicate email answers 200 with the error flag set rather than an
// HTTP error status; the web client branches on the flag.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" {
		api.Error(w, http.StatusBadRequest, "Full Name is required")
		return
	}
	if req.Email == "" {
		api.Error(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Password is required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.Internal(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.FullName, req.Email, string(hashed))
	if errors.Is(err, store.ErrDuplicateEmail) {
		api.Write(w, http.StatusOK, api.Envelope{"error": true, "message": "User already exist"})
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	token, err := h.tokens.Issue(*user)
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Registration Successful", api.Envelope{
		"user":        user,
		"accessToken": token,
	})
}

// Login checks credentials and issues a fresh token (and with it a fresh
// user snapshot).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		api.Error(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Password is required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusBadRequest, "User not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid Credentials")
		return
	}

	token, err := h.tokens.Issue(*user)
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Success(w, "Login Successful", api.Envelope{
		"email":       user.Email,
		"accessToken": token,
	})
}

// Me returns the current account's public profile. The record is
// re-fetched by the snapshot id, so an account deleted out from under a
// live token answers 401.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := UserFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Missing token")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), snapshot.ID.Hex())
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusUnauthorized, "User not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}

	api.Write(w, http.StatusOK, api.Envelope{
		"error":   false,
		"message": "",
		"user":    user,
	})
}
