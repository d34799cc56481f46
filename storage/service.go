// Package storage is the single source of truth for all persisted entities
// of the intake tracker: users, the session, the profile, daily records and
// settings, each kept as a JSON document under one key of the key-value
// backend. Write-path failures propagate as wrapped sentinel errors; read
// paths degrade to zero values so one corrupted key cannot break unrelated
// screens.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmcosta/capsulelog/credentials"
	"github.com/rmcosta/capsulelog/domain"
	"github.com/rmcosta/capsulelog/kvstore"
)

// Service owns all key-value I/O for the tracker. A single mutex serializes
// every read-modify-write cycle, so two rapid mutations can never lose each
// other's write on a shared list key.
type Service struct {
	store     kvstore.Store
	tokens    *TokenManager
	creds     *credentials.Manager // nil: any password is accepted for a known email
	keyPrefix string
	logger    *zap.Logger
	metrics   *Metrics
	notifier  LogoutNotifier

	mu sync.Mutex
}

// New creates a storage service on top of the given backend. creds may be
// nil to keep the tracker's default no-verification login; metrics may be
// nil to disable instrumentation.
func New(
	store kvstore.Store,
	tokens *TokenManager,
	creds *credentials.Manager,
	keyPrefix string,
	logger *zap.Logger,
	metrics *Metrics,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		tokens:    tokens,
		creds:     creds,
		keyPrefix: keyPrefix,
		logger:    logger,
		metrics:   metrics,
	}
}

// RegisterUser creates a new user, starts a session for it and seeds the
// default profile and settings. The email must not be registered already,
// compared case-insensitively.
func (s *Service) RegisterUser(ctx context.Context, email, password, name string) (user *domain.User, err error) {
	defer s.metrics.observe(ctx, "register_user", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	email = sanitizeEmail(email)
	if !validEmail(email) {
		return nil, fmt.Errorf("email %q: %w", email, ErrInvalidEmail)
	}

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read registered users: %w", err)
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, email) {
			return nil, fmt.Errorf("email %s: %w", email, ErrDuplicateEmail)
		}
	}

	var passwordHash string
	if s.creds != nil {
		passwordHash, err = s.creds.Hash(password)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	user = &domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	users = append(users, *user)
	if err := s.writeJSON(ctx, keyUsers, users); err != nil {
		return nil, err
	}

	if s.creds != nil {
		if err := s.storeCredential(ctx, user.ID, passwordHash); err != nil {
			return nil, err
		}
	}

	if err := s.setSession(ctx, user); err != nil {
		return nil, err
	}

	// Seed the singleton profile and settings for the fresh installation.
	profile := &domain.UserProfile{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.writeJSON(ctx, keyUserProfile, profile); err != nil {
		return nil, err
	}
	if err := s.writeJSON(ctx, keyUserSettings, defaultSettings(now)); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// LoginUser starts a session for an already registered email. Unless a
// credentials manager is wired, the password is not verified.
func (s *Service) LoginUser(ctx context.Context, email, password string) (user *domain.User, err error) {
	defer s.metrics.observe(ctx, "login_user", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	email = sanitizeEmail(email)

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read registered users: %w", err)
	}

	for i := range users {
		if !strings.EqualFold(users[i].Email, email) {
			continue
		}

		if s.creds != nil {
			if err := s.verifyCredential(ctx, users[i].ID, password); err != nil {
				return nil, err
			}
		}

		if err := s.setSession(ctx, &users[i]); err != nil {
			return nil, err
		}

		s.logger.Info("user logged in", zap.String("user_id", users[i].ID))
		return &users[i], nil
	}

	return nil, fmt.Errorf("email %s: %w", email, ErrUserNotFound)
}

// GetCurrentUser returns the session user, or nil when no session exists.
// The session requires both the current-user record and the auth token to be
// present; I/O errors degrade to nil.
func (s *Service) GetCurrentUser(ctx context.Context) *domain.User {
	defer s.metrics.observe(ctx, "get_current_user", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	var user domain.User
	if err := s.readJSON(ctx, keyCurrentUser, &user); err != nil {
		s.logReadMiss("current user", err)
		return nil
	}

	if _, err := s.store.Get(ctx, s.key(keyAuthToken)); err != nil {
		s.logReadMiss("auth token", err)
		return nil
	}

	return &user
}

// LogoutUser clears the session. It is best-effort: removal failures are
// logged, and logout subscribers are always notified.
func (s *Service) LogoutUser(ctx context.Context) {
	defer s.metrics.observe(ctx, "logout_user", time.Now(), nil)

	s.mu.Lock()
	if err := s.store.RemoveMany(ctx, s.key(keyCurrentUser), s.key(keyAuthToken)); err != nil {
		s.logger.Warn("failed to clear session keys", zap.Error(err))
	}
	s.mu.Unlock()

	s.notifier.notify()
	s.logger.Info("user logged out")
}

// SubscribeLogout registers an observer channel that receives a signal after
// every logout. The channel must be released with UnsubscribeLogout.
func (s *Service) SubscribeLogout() <-chan struct{} {
	return s.notifier.subscribe()
}

// UnsubscribeLogout removes and closes a channel returned by SubscribeLogout.
func (s *Service) UnsubscribeLogout(ch <-chan struct{}) {
	s.notifier.unsubscribe(ch)
}

// setSession stores the current user and a freshly minted auth token.
// Callers hold s.mu.
func (s *Service) setSession(ctx context.Context, user *domain.User) error {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.writeJSON(ctx, keyCurrentUser, user); err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key(keyAuthToken), token); err != nil {
		return fmt.Errorf("failed to write key %s: %w", keyAuthToken, err)
	}
	return nil
}

// storeCredential records a password hash in the credentials map.
// Callers hold s.mu.
func (s *Service) storeCredential(ctx context.Context, userID, hash string) error {
	hashes := map[string]string{}
	if err := s.readJSON(ctx, keyCredentials, &hashes); err != nil && err != kvstore.ErrNotFound {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	hashes[userID] = hash
	return s.writeJSON(ctx, keyCredentials, hashes)
}

// verifyCredential checks a password against the stored hash for a user.
// Callers hold s.mu.
func (s *Service) verifyCredential(ctx context.Context, userID, password string) error {
	hashes := map[string]string{}
	if err := s.readJSON(ctx, keyCredentials, &hashes); err != nil && err != kvstore.ErrNotFound {
		return fmt.Errorf("failed to read credentials: %w", err)
	}

	// Users registered before credential checking was enabled have no hash;
	// they keep the historical accept-any-password behavior.
	hash, ok := hashes[userID]
	if !ok {
		return nil
	}
	if !s.creds.Verify(password, hash) {
		return ErrInvalidCredentials
	}
	return nil
}

// readUsers loads the registered users list; a missing key is an empty list.
// Callers hold s.mu.
func (s *Service) readUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.readJSON(ctx, keyUsers, &users); err != nil {
		if err == kvstore.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return users, nil
}

// readJSON loads and decodes one key. kvstore.ErrNotFound passes through
// unwrapped so callers can treat absence separately from corruption.
func (s *Service) readJSON(ctx context.Context, name string, v any) error {
	raw, err := s.store.Get(ctx, s.key(name))
	if err != nil {
		if err == kvstore.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to read key %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode key %s: %w", name, err)
	}
	return nil
}

// writeJSON encodes and stores one key.
func (s *Service) writeJSON(ctx context.Context, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", name, err)
	}
	if err := s.store.Set(ctx, s.key(name), string(raw)); err != nil {
		return fmt.Errorf("failed to write key %s: %w", name, err)
	}
	return nil
}

// logReadMiss logs a degraded read path; plain key absence is not noisy.
func (s *Service) logReadMiss(what string, err error) {
	if err == kvstore.ErrNotFound {
		return
	}
	s.logger.Warn("read path degraded to default", zap.String("entity", what), zap.Error(err))
}
