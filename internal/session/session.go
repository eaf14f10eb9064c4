// Package session defines the identity-provider boundary and the request
// context plumbing for the authenticated user. Token handling lives in the
// external auth SDK, not here.
package session

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when no user is signed in.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the capability consumed from the external identity provider.
type Identity interface {
	// CurrentUserID returns the signed-in user's id.
	CurrentUserID(ctx context.Context) (string, error)

	// Logout signs the current user out.
	Logout(ctx context.Context) error
}

// Static is an Identity fixed to one user id, used in development and tests.
type Static struct {
	UID string
}

func (s *Static) CurrentUserID(context.Context) (string, error) {
	if s.UID == "" {
		return "", ErrNotAuthenticated
	}
	return s.UID, nil
}

func (s *Static) Logout(context.Context) error {
	s.UID = ""
	return nil
}

type contextKey struct{}

// WithUserID stores the resolved user id in the context. Services take the
// user id explicitly; this is only for the HTTP layer to carry it between
// middleware and handlers.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, contextKey{}, uid)
}

// UserID extracts the user id placed by WithUserID.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(contextKey{}).(string)
	return uid, ok && uid != ""
}
