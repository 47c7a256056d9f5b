// Package store implements the two application stores: the identity store
// (user roster plus current session) and the content store (posts with
// nested comments and like sets). Both keep their state in memory, persist a
// full snapshot to the storage namespace after every successful mutation and
// rehydrate from it at construction.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// IdentityStore owns the registered-user roster and the current session.
// Construct exactly one per namespace and pass it by reference; there is no
// package-level instance.
type IdentityStore struct {
	mu  sync.Mutex
	ns  storage.Namespace
	log *slog.Logger

	users    []models.User
	current  *models.User
	usersGen int64
}

// NewIdentityStore builds an identity store bound to ns, rehydrating the
// roster and session from it. Absent or malformed data falls back to an
// empty roster and no session; no error is surfaced for that case.
func NewIdentityStore(ctx context.Context, ns storage.Namespace, log *slog.Logger) (*IdentityStore, error) {
	s := &IdentityStore{ns: ns, log: log}

	raw, err := ns.Get(ctx, storage.KeyUsers)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, &s.users); jsonErr != nil {
			log.WarnContext(ctx, "malformed user roster snapshot, starting empty",
				slog.String("error", jsonErr.Error()))
			observability.SeedFallbacks.WithLabelValues(storage.KeyUsers, "malformed").Inc()
			s.users = nil
		}
	case err == storage.ErrKeyNotFound:
		// first run
	default:
		return nil, err
	}
	s.usersGen, _ = ns.Generation(ctx, storage.KeyUsers)

	raw, err = ns.Get(ctx, storage.KeyCurrentUser)
	if err == nil {
		var session models.User
		if jsonErr := json.Unmarshal(raw, &session); jsonErr != nil {
			log.WarnContext(ctx, "malformed session snapshot, starting logged out",
				slog.String("error", jsonErr.Error()))
		} else {
			s.current = &session
		}
	} else if err != storage.ErrKeyNotFound {
		return nil, err
	}

	return s, nil
}

// Signup registers a new user. Email and username must be unique across the
// roster; on success the new user is appended, persisted, and a session is
// established with a password-redacted copy (auto-login).
func (s *IdentityStore) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return nil, models.NewDuplicateEmailError(email)
		}
	}
	for i := range s.users {
		if s.users[i].Username == username {
			return nil, models.NewDuplicateUsernameError(username)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := models.User{
		ID:        nextStringID(),
		Username:  username,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)
	if err := s.persistUsers(ctx); err != nil {
		// roll back the in-memory append so state matches the namespace
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}

	session := user.Redacted()
	s.current = &session
	if err := s.persistSession(ctx); err != nil {
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("identity", "signup").Inc()
	out := session
	return &out, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return the single InvalidCredentials kind. On success the
// session is replaced with the redacted user and persisted.
func (s *IdentityStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.User
	for i := range s.users {
		if s.users[i].Email == email {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	session := found.Redacted()
	s.current = &session
	if err := s.persistSession(ctx); err != nil {
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("identity", "login").Inc()
	out := session
	return &out, nil
}

// Logout clears the session and removes its persisted copy. It has no
// failure mode of its own; logging out while logged out is a no-op.
func (s *IdentityStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.ns.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}
	observability.StoreMutations.WithLabelValues("identity", "logout").Inc()
	return nil
}

// IsAuthenticated reports whether a session is currently held.
func (s *IdentityStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (s *IdentityStore) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// Resolve maps a user id to its author identity. The content store calls
// this so writes carry server-resolved identity instead of trusting the
// caller's payload.
func (s *IdentityStore) Resolve(_ context.Context, userID string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == userID {
			return s.users[i].Identity(), nil
		}
	}
	return models.Identity{}, models.NewNotFoundError("User", userID)
}

// UserCount returns the roster size.
func (s *IdentityStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *IdentityStore) persistUsers(ctx context.Context) error {
	raw, err := json.Marshal(s.users)
	if err != nil {
		return models.NewInternalError(err)
	}
	if gen, genErr := s.ns.Generation(ctx, storage.KeyUsers); genErr == nil && gen != s.usersGen {
		s.log.WarnContext(ctx, "stale snapshot overwritten",
			slog.String("key", storage.KeyUsers),
			slog.Int64("expected_generation", s.usersGen),
			slog.Int64("found_generation", gen))
	}
	if err := s.ns.Set(ctx, storage.KeyUsers, raw); err != nil {
		return err
	}
	s.usersGen, _ = s.ns.Generation(ctx, storage.KeyUsers)
	observability.SnapshotWrites.WithLabelValues(storage.KeyUsers).Inc()
	return nil
}

func (s *IdentityStore) persistSession(ctx context.Context) error {
	raw, err := json.Marshal(s.current)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.ns.Set(ctx, storage.KeyCurrentUser, raw); err != nil {
		return err
	}
	observability.SnapshotWrites.WithLabelValues(storage.KeyCurrentUser).Inc()
	return nil
}
