package services

import (
	"context"
	"errors"
	"testing"

	"watwallet/internal/cache"
	"watwallet/internal/core"
	"watwallet/internal/session"
	"watwallet/internal/store"
	"watwallet/internal/store/memory"
)

func newUserService(uid string) (*UserService, *session.Static, store.Store) {
	st := memory.New()
	identity := &session.Static{UID: uid}
	svc := NewUserService(st, identity, cache.NewLRU[core.User](16, 0))
	return svc, identity, st
}

func profile() core.Profile {
	return core.Profile{Name: "Ada", Surname: "Rossi", Phone: "+39000000", Email: "ada@example.com"}
}

func TestRegisterAndGet(t *testing.T) {
	svc, _, _ := newUserService("u1")
	ctx := context.Background()

	if err := svc.Register(ctx, "u1", profile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Profile.Name != "Ada" || got.Profile.Email != "ada@example.com" {
		t.Errorf("user = %+v", got)
	}
}

func TestRegisterValidatesProfile(t *testing.T) {
	svc, _, _ := newUserService("u1")

	err := svc.Register(context.Background(), "u1", core.Profile{Name: "", Email: "a@b.c"})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}

func TestGetMissingUserReturnsNil(t *testing.T) {
	svc, _, _ := newUserService("u1")

	got, err := svc.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestGetServesFromCache(t *testing.T) {
	svc, _, st := newUserService("u1")
	ctx := context.Background()

	if err := svc.Register(ctx, "u1", profile()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Remove the backing document; the cached copy should still answer.
	if err := st.Delete(ctx, store.CollectionUsers, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("cached user not returned")
	}
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	svc, _, _ := newUserService("u1")
	ctx := context.Background()

	if err := svc.Register(ctx, "u1", profile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	p := profile()
	p.Name = "Beatrice"
	if err := svc.UpdateProfile(ctx, "u1", p); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Profile.Name != "Beatrice" {
		t.Errorf("name = %q, want Beatrice", got.Profile.Name)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc, _, _ := newUserService("u1")

	err := svc.UpdateProfile(context.Background(), "ghost", profile())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCurrentUsesIdentity(t *testing.T) {
	svc, _, _ := newUserService("u1")
	ctx := context.Background()

	if err := svc.Register(ctx, "u1", profile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Errorf("user = %+v", got)
	}
}

func TestCurrentNotAuthenticated(t *testing.T) {
	svc, _, _ := newUserService("")

	_, err := svc.Current(context.Background())
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestLogoutEvictsCachedUser(t *testing.T) {
	svc, identity, st := newUserService("u1")
	ctx := context.Background()

	if err := svc.Register(ctx, "u1", profile()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := identity.CurrentUserID(ctx); !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("identity still signed in: %v", err)
	}

	// With the cache evicted, a read goes back to the store.
	if err := st.Delete(ctx, store.CollectionUsers, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil after eviction", got)
	}
}
