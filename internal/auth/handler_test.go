package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mehul/notes-app/backend/internal/models"
	"github.com/mehul/notes-app/backend/internal/store"
)

// fakeUserStore keeps accounts in memory, enforcing the unique-email
// contract the real store gets from its index.
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, fullName, email, hashedPw string) (*models.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, store.ErrDuplicateEmail
	}
	u := &models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		Password:  hashedPw,
		CreatedOn: time.Now(),
	}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func newTestHandler() (*Handler, *fakeUserStore, *TokenManager) {
	users := newFakeUserStore()
	tokens := NewTokenManager([]byte("test-secret"), time.Hour)
	return NewHandler(users, tokens), users, tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegister_TokenDecodesToSubmittedEmail(t *testing.T) {
	h, _, tokens := newTestHandler()

	rr := postJSON(t, h.Register, "/create-account", models.RegisterRequest{
		FullName: "Jane Smith",
		Email:    "jane@example.com",
		Password: "hunter2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Error       bool        `json:"error"`
		Message     string      `json:"message"`
		AccessToken string      `json:"accessToken"`
		User        models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Error)
	assert.Equal(t, "Registration Successful", resp.Message)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	snapshot, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", snapshot.Email)
}

func TestRegister_DuplicateEmailSoft200(t *testing.T) {
	h, users, _ := newTestHandler()

	body := models.RegisterRequest{FullName: "Jane", Email: "jane@example.com", Password: "pw"}
	rr := postJSON(t, h.Register, "/create-account", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, h.Register, "/create-account", body)
	require.Equal(t, http.StatusOK, rr.Code, "duplicate email keeps the 200 status the client expects")

	var resp struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Error)
	assert.Equal(t, "User already exist", resp.Message)
	assert.Len(t, users.byEmail, 1, "store must hold exactly one record for the email")
}

func TestRegister_MissingFields(t *testing.T) {
	h, _, _ := newTestHandler()

	cases := []struct {
		name    string
		body    models.RegisterRequest
		message string
	}{
		{"no full name", models.RegisterRequest{Email: "a@b.c", Password: "pw"}, "Full Name is required"},
		{"no email", models.RegisterRequest{FullName: "A", Password: "pw"}, "Email is required"},
		{"no password", models.RegisterRequest{FullName: "A", Email: "a@b.c"}, "Password is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, h.Register, "/create-account", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.message)
		})
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := postJSON(t, h.Login, "/login", models.LoginRequest{Email: "ghost@example.com", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "User not found")
}

func TestLogin_WrongPassword(t *testing.T) {
	h, users, _ := newTestHandler()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.CreateUser(context.Background(), "Jane", "jane@example.com", string(hashed))
	require.NoError(t, err)

	rr := postJSON(t, h.Login, "/login", models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid Credentials")
}

func TestLogin_Success(t *testing.T) {
	h, users, tokens := newTestHandler()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.CreateUser(context.Background(), "Jane", "jane@example.com", string(hashed))
	require.NoError(t, err)

	rr := postJSON(t, h.Login, "/login", models.LoginRequest{Email: "jane@example.com", Password: "hunter2"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Error       bool   `json:"error"`
		Email       string `json:"email"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Error)
	assert.Equal(t, "jane@example.com", resp.Email)

	snapshot, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", snapshot.Email)
}

func TestMe_ReturnsProfileWithoutPassword(t *testing.T) {
	h, users, _ := newTestHandler()

	user, err := users.CreateUser(context.Background(), "Jane Smith", "jane@example.com", "hashed-secret")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/get-user", nil)
	req = req.WithContext(ContextWithUser(req.Context(), *user))
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Jane Smith")
	assert.False(t, strings.Contains(rr.Body.String(), "hashed-secret"), "password must never be serialized")

	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestMe_GoneUser(t *testing.T) {
	h, _, _ := newTestHandler()

	ghost := models.User{ID: primitive.NewObjectID(), Email: "ghost@example.com"}
	req := httptest.NewRequest("GET", "/get-user", nil)
	req = req.WithContext(ContextWithUser(req.Context(), ghost))
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
