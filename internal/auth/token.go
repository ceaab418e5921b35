package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mehul/notes-app/backend/internal/models"
)

// DefaultTokenTTL matches the long sticky-login expiry the web client
// assumes: the token lives in browser-local storage until the next login.
const DefaultTokenTTL = 36000 * time.Minute

// ErrInvalidToken covers bad signatures, expiry, and malformed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims embeds a snapshot of the user's public fields at issuance time.
// Verification trusts the snapshot without a store lookup, so identity
// changes after issuance are not visible until the token is reissued.
type Claims struct {
	jwt.RegisteredClaims
	User models.User `json:"user"`
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the user snapshot. No side effects beyond
// signing.
func (m *TokenManager) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		User: user,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry locally and returns the embedded
// snapshot. It never touches the store.
func (m *TokenManager) Verify(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims.User, nil
}

type ctxKey struct{}

// ContextWithUser attaches the verified snapshot for downstream handlers.
func ContextWithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the snapshot placed by the auth middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(models.User)
	return user, ok
}
