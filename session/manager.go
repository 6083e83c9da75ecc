// Package session issues and revokes the signed tokens that represent a
// user's active logins. Tokens live in two places: the signed JWT held by the
// client and the token set on the user document, which exists so individual
// devices can be logged out and so a password change can drop every session.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/store"
)

var (
	// ErrInvalidToken signals a token with a bad signature or past expiry.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrUnknownSubject signals a valid token whose user no longer exists.
	ErrUnknownSubject = errors.New("session: unknown subject")
)

// Claims are the signed token contents: the user id, their role and the
// standard expiry fields.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Role   string             `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and revokes tokens against the user store.
type Manager struct {
	users  store.UserStore
	secret []byte
	expiry time.Duration
}

func NewManager(users store.UserStore, secret []byte, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{
		users:  users,
		secret: secret,
		expiry: expiry,
	}
}

// Issue signs a token for the user and appends it to their token set. The set
// grows with every login and shrinks only through Revoke and RevokeAll.
func (m *Manager) Issue(ctx context.Context, user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			// Unique per token so that two logins in the same second still
			// produce distinct values and Revoke removes exactly one.
			ID: primitive.NewObjectID().Hex(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}

	if err := m.users.AppendToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Verify decodes the token, checks its signature and expiry, and loads the
// subject. It does NOT check that the token is still in the user's set: a
// token revoked by logout or logoutAll keeps verifying until it expires.
// That staleness window is a documented property of the system, not an
// oversight.
func (m *Manager) Verify(ctx context.Context, tokenString string) (models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUnknownSubject
		}
		return models.User{}, err
	}
	return user, nil
}

// Revoke removes exactly one matching token from the user's set.
func (m *Manager) Revoke(ctx context.Context, userID primitive.ObjectID, tokenString string) error {
	return m.users.RemoveToken(ctx, userID, tokenString)
}

// RevokeAll clears the user's token set, logging out every device.
func (m *Manager) RevokeAll(ctx context.Context, userID primitive.ObjectID) error {
	return m.users.ClearTokens(ctx, userID)
}
