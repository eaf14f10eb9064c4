package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"watwallet/internal/cache"
	"watwallet/internal/core"
	"watwallet/internal/log"
	"watwallet/internal/session"
	"watwallet/internal/store"
)

// UserService manages user profiles. Reads go through an explicit per-user
// cache keyed by user id; profile writes and logout invalidate the entry so
// a stale profile never outlives the session that wrote it.
type UserService struct {
	store    store.Store
	identity session.Identity
	cache    cache.Cache[core.User]
}

func NewUserService(st store.Store, identity session.Identity, c cache.Cache[core.User]) *UserService {
	return &UserService{store: st, identity: identity, cache: c}
}

// Register creates or replaces the user document at the given id. The id
// comes from the identity provider, so Set rather than Add.
func (s *UserService) Register(ctx context.Context, userID string, profile core.Profile) error {
	if userID == "" {
		return core.ErrUserRequired
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	u := core.User{ID: userID, Profile: profile}
	if err := s.store.Set(ctx, store.CollectionUsers, userID, store.EncodeUser(u)); err != nil {
		return fmt.Errorf("%w: set user: %w", core.ErrDataUnavailable, err)
	}
	s.cache.Set(userID, u)

	slog.InfoContext(ctx, "User registered",
		log.FieldComponent, log.ComponentUser,
		log.FieldUserID, userID)
	return nil
}

// Get returns the user record, from cache when possible. Returns nil, nil
// when the user does not exist.
func (s *UserService) Get(ctx context.Context, userID string) (*core.User, error) {
	if userID == "" {
		return nil, core.ErrUserRequired
	}
	if u, ok := s.cache.Get(userID); ok {
		return &u, nil
	}

	doc, err := s.store.Get(ctx, store.CollectionUsers, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %w", core.ErrDataUnavailable, err)
	}
	u, err := store.DecodeUser(doc)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, u)
	return &u, nil
}

// Current resolves the signed-in user through the identity provider and
// loads their record.
func (s *UserService) Current(ctx context.Context) (*core.User, error) {
	uid, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

// UpdateProfile replaces the profile fields of an existing user and drops
// the cached entry.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, profile core.Profile) error {
	if userID == "" {
		return core.ErrUserRequired
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	fields := map[string]any{
		"name":    profile.Name,
		"surname": profile.Surname,
		"phone":   profile.Phone,
		"email":   profile.Email,
	}
	if err := s.store.Update(ctx, store.CollectionUsers, userID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: update user: %w", core.ErrDataUnavailable, err)
	}
	s.cache.Delete(userID)
	return nil
}

// Logout signs the user out and evicts their cached record.
func (s *UserService) Logout(ctx context.Context) error {
	uid, err := s.identity.CurrentUserID(ctx)
	if err != nil && !errors.Is(err, session.ErrNotAuthenticated) {
		return err
	}
	if err := s.identity.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if uid != "" {
		s.cache.Delete(uid)
	}
	slog.InfoContext(ctx, "User logged out",
		log.FieldComponent, log.ComponentUser,
		log.FieldUserID, uid)
	return nil
}
