package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newIdentityStore(t *testing.T, ns storage.Namespace) *IdentityStore {
	t.Helper()
	s, err := NewIdentityStore(context.Background(), ns, testLogger())
	require.NoError(t, err)
	return s
}

func TestIdentityStore_SignupEstablishesSession(t *testing.T) {
	ns := storage.NewMemory()
	s := newIdentityStore(t, ns)
	ctx := context.Background()

	user, err := s.Signup(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.Password, "signup result must be redacted")

	assert.True(t, s.IsAuthenticated())
	current := s.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	// The persisted session must never contain a password field, even empty.
	raw, err := ns.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"password"`)

	// The roster copy keeps the hash, and never the plaintext.
	raw, err = ns.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"password"`)
	assert.NotContains(t, string(raw), "secret123")
}

func TestIdentityStore_SignupRejectsDuplicates(t *testing.T) {
	s := newIdentityStore(t, storage.NewMemory())
	ctx := context.Background()

	_, err := s.Signup(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "alice2", "alice@example.com", "secret123")
	assert.True(t, models.HasCode(err, models.CodeDuplicateEmail))

	_, err = s.Signup(ctx, "alice", "other@example.com", "secret123")
	assert.True(t, models.HasCode(err, models.CodeDuplicateUsername))

	assert.Equal(t, 1, s.UserCount(), "rejected signups must not grow the roster")
}

func TestIdentityStore_Login(t *testing.T) {
	s := newIdentityStore(t, storage.NewMemory())
	ctx := context.Background()

	signed, err := s.Signup(ctx, "bob", "bob@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@example.com", "hunter22")
		assert.True(t, models.HasCode(err, models.CodeInvalidCredentials))
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "bob@example.com", "wrong")
		assert.True(t, models.HasCode(err, models.CodeInvalidCredentials))
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("success", func(t *testing.T) {
		user, err := s.Login(ctx, "bob@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, signed.ID, user.ID)
		assert.Empty(t, user.Password)
		assert.True(t, s.IsAuthenticated())
	})
}

func TestIdentityStore_Logout(t *testing.T) {
	ns := storage.NewMemory()
	s := newIdentityStore(t, ns)
	ctx := context.Background()

	_, err := s.Signup(ctx, "carol", "carol@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())

	_, err = ns.Get(ctx, storage.KeyCurrentUser)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Logging out while logged out stays a no-op.
	require.NoError(t, s.Logout(ctx))
}

func TestIdentityStore_RehydratesRosterAndSession(t *testing.T) {
	ns := storage.NewMemory()
	ctx := context.Background()

	first := newIdentityStore(t, ns)
	signed, err := first.Signup(ctx, "dora", "dora@example.com", "secret123")
	require.NoError(t, err)

	second := newIdentityStore(t, ns)
	assert.Equal(t, 1, second.UserCount())
	current := second.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, signed.ID, current.ID)

	// The rehydrated roster still carries the hash, so login keeps working.
	user, err := second.Login(ctx, "dora@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, signed.ID, user.ID)
}

func TestIdentityStore_MalformedSnapshotsStartClean(t *testing.T) {
	ns := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, ns.Set(ctx, storage.KeyUsers, []byte(`{not json`)))
	require.NoError(t, ns.Set(ctx, storage.KeyCurrentUser, []byte(`[broken`)))

	s := newIdentityStore(t, ns)
	assert.Equal(t, 0, s.UserCount())
	assert.False(t, s.IsAuthenticated())
}

func TestIdentityStore_Resolve(t *testing.T) {
	s := newIdentityStore(t, storage.NewMemory())
	ctx := context.Background()

	signed, err := s.Signup(ctx, "erin", "erin@example.com", "secret123")
	require.NoError(t, err)

	id, err := s.Resolve(ctx, signed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: signed.ID, Username: "erin"}, id)

	_, err = s.Resolve(ctx, "no-such-user")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
