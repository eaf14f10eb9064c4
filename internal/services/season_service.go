package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"watwallet/internal/core"
	"watwallet/internal/log"
	"watwallet/internal/store"
)

// SeasonService resolves the current working season and owns the single
// writer of the "current" flag.
type SeasonService struct {
	store store.Store
}

func NewSeasonService(st store.Store) *SeasonService {
	return &SeasonService{store: st}
}

// Current returns the one season flagged current. Zero matches and multiple
// matches are explicit errors, never a silent first-match.
func (s *SeasonService) Current(ctx context.Context) (core.Season, error) {
	docs, err := s.store.Query(ctx, store.CollectionSeasons, store.Where("current", store.OpEq, true))
	if err != nil {
		return core.Season{}, fmt.Errorf("%w: query current season: %w", core.ErrDataUnavailable, err)
	}
	switch len(docs) {
	case 0:
		return core.Season{}, core.ErrNoCurrentSeason
	case 1:
		return store.DecodeSeason(docs[0])
	default:
		return core.Season{}, core.ErrAmbiguousSeason
	}
}

// Create adds a season. It does not touch the current flag; use SetCurrent.
func (s *SeasonService) Create(ctx context.Context, year int64) (string, error) {
	id, err := s.store.Add(ctx, store.CollectionSeasons, store.EncodeSeason(core.Season{Year: year}))
	if err != nil {
		return "", fmt.Errorf("%w: add season: %w", core.ErrDataUnavailable, err)
	}
	return id, nil
}

// SetCurrent flags one season current and clears the flag everywhere else.
// The writes are single-document and not transactional; this operation is
// meant to run from a single admin path, which is what keeps the
// one-current-season invariant.
func (s *SeasonService) SetCurrent(ctx context.Context, seasonID string) error {
	if _, err := s.store.Get(ctx, store.CollectionSeasons, seasonID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: get season: %w", core.ErrDataUnavailable, err)
	}

	docs, err := s.store.Query(ctx, store.CollectionSeasons, store.Where("current", store.OpEq, true))
	if err != nil {
		return fmt.Errorf("%w: query current seasons: %w", core.ErrDataUnavailable, err)
	}
	for _, doc := range docs {
		if doc.ID == seasonID {
			continue
		}
		if err := s.store.Update(ctx, store.CollectionSeasons, doc.ID, map[string]any{"current": false}); err != nil {
			return fmt.Errorf("%w: clear current flag on %s: %w", core.ErrDataUnavailable, doc.ID, err)
		}
		slog.InfoContext(ctx, "Cleared current season flag",
			log.FieldComponent, log.ComponentSeason,
			log.FieldSeasonID, doc.ID)
	}

	if err := s.store.Update(ctx, store.CollectionSeasons, seasonID, map[string]any{"current": true}); err != nil {
		return fmt.Errorf("%w: set current flag on %s: %w", core.ErrDataUnavailable, seasonID, err)
	}
	return nil
}
