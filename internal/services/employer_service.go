package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"watwallet/internal/core"
	"watwallet/internal/store"
)

// EmployerService manages the shared employer reference data. Employers are
// global, not per user, and are never deleted.
type EmployerService struct {
	store store.Store
}

func NewEmployerService(st store.Store) *EmployerService {
	return &EmployerService{store: st}
}

func (s *EmployerService) Create(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", core.ErrEmptyName
	}
	id, err := s.store.Add(ctx, store.CollectionEmployers, store.EncodeEmployer(core.Employer{Name: name}))
	if err != nil {
		return "", fmt.Errorf("%w: add employer: %w", core.ErrDataUnavailable, err)
	}
	return id, nil
}

// Search returns employers whose name contains the term, case-insensitive.
// The collection is small and mostly static, so it filters a full fetch
// rather than pushing substring matching into the store.
func (s *EmployerService) Search(ctx context.Context, term string) ([]core.Employer, error) {
	all, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	matched := make([]core.Employer, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Name), term) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// List returns up to limit employers sorted by name. A limit of zero or
// less means no limit.
func (s *EmployerService) List(ctx context.Context, limit int) ([]core.Employer, error) {
	all, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *EmployerService) list(ctx context.Context) ([]core.Employer, error) {
	docs, err := s.store.Query(ctx, store.CollectionEmployers, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("%w: query employers: %w", core.ErrDataUnavailable, err)
	}
	employers := make([]core.Employer, 0, len(docs))
	for _, doc := range docs {
		e, err := store.DecodeEmployer(doc)
		if err != nil {
			return nil, err
		}
		employers = append(employers, e)
	}
	sort.Slice(employers, func(i, j int) bool {
		ni, nj := strings.ToLower(employers[i].Name), strings.ToLower(employers[j].Name)
		if ni != nj {
			return ni < nj
		}
		return employers[i].ID < employers[j].ID
	})
	return employers, nil
}
