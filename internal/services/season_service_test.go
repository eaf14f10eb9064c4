package services

import (
	"context"
	"errors"
	"testing"

	"watwallet/internal/core"
	"watwallet/internal/store"
	"watwallet/internal/store/memory"
)

func TestCurrentSeasonErrors(t *testing.T) {
	st := memory.New()
	svc := NewSeasonService(st)
	ctx := context.Background()

	if _, err := svc.Current(ctx); !errors.Is(err, core.ErrNoCurrentSeason) {
		t.Fatalf("empty store: err = %v, want ErrNoCurrentSeason", err)
	}

	seedCurrentSeason(t, st, 2025)
	season, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if season.Year != 2025 {
		t.Errorf("year = %d, want 2025", season.Year)
	}

	seedCurrentSeason(t, st, 2026)
	if _, err := svc.Current(ctx); !errors.Is(err, core.ErrAmbiguousSeason) {
		t.Fatalf("two flags: err = %v, want ErrAmbiguousSeason", err)
	}
}

func TestSetCurrentMovesFlag(t *testing.T) {
	st := memory.New()
	svc := NewSeasonService(st)
	ctx := context.Background()

	oldID := seedCurrentSeason(t, st, 2025)
	newID, err := svc.Create(ctx, 2026)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.SetCurrent(ctx, newID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}

	season, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if season.ID != newID || season.Year != 2026 {
		t.Errorf("current = %+v, want %s/2026", season, newID)
	}

	doc, err := st.Get(ctx, store.CollectionSeasons, oldID)
	if err != nil {
		t.Fatalf("Get old season: %v", err)
	}
	if flag, _ := doc.Fields["current"].(bool); flag {
		t.Error("old season still flagged current")
	}
}

func TestSetCurrentMissingSeason(t *testing.T) {
	svc := NewSeasonService(memory.New())

	err := svc.SetCurrent(context.Background(), "ghost")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetCurrentIsStableWhenAlreadyCurrent(t *testing.T) {
	st := memory.New()
	svc := NewSeasonService(st)
	ctx := context.Background()

	id := seedCurrentSeason(t, st, 2026)
	if err := svc.SetCurrent(ctx, id); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	season, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if season.ID != id {
		t.Errorf("current = %s, want %s", season.ID, id)
	}
}
