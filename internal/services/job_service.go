package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"watwallet/internal/core"
	"watwallet/internal/log"
	"watwallet/internal/store"
)

// JobCreate carries the caller-supplied fields for a new job. The season is
// resolved server-side from the current-season flag.
type JobCreate struct {
	EmployerID  string
	Position    string
	Description string
	Location    core.Location
	StartDate   core.Date
	EndDate     core.Date
}

// JobUpdate carries the replacement fields for an existing job.
type JobUpdate struct {
	EmployerID  string
	Position    string
	Description string
	Location    core.Location
	StartDate   core.Date
	EndDate     core.Date
}

// JobService maintains the user ↔ job ↔ season relationship. Each
// association is its own season_jobs document, so adding, updating and
// soft-deleting are single-document writes: concurrent callers cannot
// clobber each other's entries.
type JobService struct {
	store   store.Store
	seasons *SeasonService
}

func NewJobService(st store.Store, seasons *SeasonService) *JobService {
	return &JobService{store: st, seasons: seasons}
}

// AddJob creates the canonical job record and the season-job association
// for the current season, returning the new job id.
func (s *JobService) AddJob(ctx context.Context, userID string, in JobCreate) (string, error) {
	if err := validateJobFields(userID, in.EmployerID, in.Position, in.StartDate, in.EndDate); err != nil {
		return "", err
	}
	if err := s.checkEmployerExists(ctx, in.EmployerID); err != nil {
		return "", err
	}

	season, err := s.seasons.Current(ctx)
	if err != nil {
		return "", err
	}

	job := core.Job{
		EmployerID:  in.EmployerID,
		Position:    in.Position,
		Description: in.Description,
		Location:    in.Location,
		Season:      season.Year,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Active:      true,
	}
	jobID, err := s.store.Add(ctx, store.CollectionJobs, store.EncodeJob(job))
	if err != nil {
		return "", fmt.Errorf("%w: add job: %w", core.ErrDataUnavailable, err)
	}

	association := core.SeasonJob{
		UserID:    userID,
		JobID:     jobID,
		SeasonID:  season.ID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if _, err := s.store.Add(ctx, store.CollectionSeasonJobs, store.EncodeSeasonJob(association)); err != nil {
		return "", fmt.Errorf("%w: add season job: %w", core.ErrDataUnavailable, err)
	}

	slog.InfoContext(ctx, "Job created",
		log.FieldComponent, log.ComponentJobs,
		log.FieldUserID, userID,
		log.FieldJobID, jobID,
		log.FieldSeasonID, season.ID)

	return jobID, nil
}

// UpdateJob replaces the canonical job fields and refreshes the date range
// cached on the season-job association.
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID string, in JobUpdate) error {
	if err := validateJobFields(userID, in.EmployerID, in.Position, in.StartDate, in.EndDate); err != nil {
		return err
	}
	if jobID == "" {
		return core.ErrJobRequired
	}
	if err := s.checkEmployerExists(ctx, in.EmployerID); err != nil {
		return err
	}

	fields := map[string]any{
		"employer":     in.EmployerID,
		"position":     in.Position,
		"description":  in.Description,
		"locationInfo": in.Location.Label,
		"latitude":     in.Location.Latitude,
		"longitude":    in.Location.Longitude,
		"startDate":    in.StartDate.Time,
		"endDate":      in.EndDate.Time,
	}
	if err := s.store.Update(ctx, store.CollectionJobs, jobID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: update job: %w", core.ErrDataUnavailable, err)
	}

	association, err := s.findAssociation(ctx, userID, jobID, false)
	if err != nil {
		return err
	}
	if association == nil {
		slog.WarnContext(ctx, "Job has no season-job entry for user",
			log.FieldComponent, log.ComponentJobs,
			log.FieldUserID, userID,
			log.FieldJobID, jobID)
		return nil
	}
	dates := map[string]any{
		"startDate": in.StartDate.Time,
		"endDate":   in.EndDate.Time,
	}
	if err := s.store.Update(ctx, store.CollectionSeasonJobs, association.ID, dates); err != nil {
		return fmt.Errorf("%w: update season job dates: %w", core.ErrDataUnavailable, err)
	}
	return nil
}

// SoftDeleteJob flags the user's association deleted. The canonical job
// record stays; direct GetJob lookups still see it. Deleting an already
// deleted or absent association is a no-op.
func (s *JobService) SoftDeleteJob(ctx context.Context, userID, jobID string) error {
	association, err := s.findAssociation(ctx, userID, jobID, true)
	if err != nil {
		return err
	}
	if association == nil {
		return nil
	}
	if err := s.store.Update(ctx, store.CollectionSeasonJobs, association.ID, map[string]any{"deleted": true}); err != nil {
		return fmt.Errorf("%w: soft delete season job: %w", core.ErrDataUnavailable, err)
	}

	slog.InfoContext(ctx, "Job soft-deleted",
		log.FieldComponent, log.ComponentJobs,
		log.FieldUserID, userID,
		log.FieldJobID, jobID)
	return nil
}

// ListJobs returns the user's live jobs as denormalized views. An entry
// whose job or employer reference cannot be resolved is dropped from the
// result and logged, keeping the rest of the list available.
func (s *JobService) ListJobs(ctx context.Context, userID string) ([]core.JobView, error) {
	if userID == "" {
		return nil, core.ErrUserRequired
	}
	docs, err := s.store.Query(ctx, store.CollectionSeasonJobs,
		store.Where("user", store.OpEq, userID).Where("deleted", store.OpEq, false))
	if err != nil {
		return nil, fmt.Errorf("%w: query season jobs: %w", core.ErrDataUnavailable, err)
	}

	views := make([]core.JobView, 0, len(docs))
	for _, doc := range docs {
		association, err := store.DecodeSeasonJob(doc)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed season-job entry",
				log.FieldComponent, log.ComponentJobs,
				log.FieldEntryID, doc.ID,
				log.FieldError, err)
			continue
		}
		view, err := s.resolveView(ctx, association)
		if err != nil {
			slog.WarnContext(ctx, "Dropping job with unresolvable references",
				log.FieldComponent, log.ComponentJobs,
				log.FieldUserID, userID,
				log.FieldJobID, association.JobID,
				log.FieldError, err)
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetJob resolves a single association by job id, including soft-deleted
// ones: the delete is visible only through the ListJobs filter. Returns
// nil, nil when the user never held the job.
func (s *JobService) GetJob(ctx context.Context, userID, jobID string) (*core.JobView, error) {
	if userID == "" {
		return nil, core.ErrUserRequired
	}
	if jobID == "" {
		return nil, core.ErrJobRequired
	}

	docs, err := s.store.Query(ctx, store.CollectionSeasonJobs,
		store.Where("user", store.OpEq, userID).Where("job", store.OpEq, jobID))
	if err != nil {
		return nil, fmt.Errorf("%w: query season jobs: %w", core.ErrDataUnavailable, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	association, err := store.DecodeSeasonJob(docs[0])
	if err != nil {
		return nil, err
	}
	view, err := s.resolveView(ctx, association)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s: %w", core.ErrReferenceResolution, jobID, err)
	}
	return view, nil
}

func (s *JobService) resolveView(ctx context.Context, association core.SeasonJob) (*core.JobView, error) {
	jobDoc, err := s.store.Get(ctx, store.CollectionJobs, association.JobID)
	if err != nil {
		return nil, err
	}
	job, err := store.DecodeJob(jobDoc)
	if err != nil {
		return nil, err
	}

	employerDoc, err := s.store.Get(ctx, store.CollectionEmployers, job.EmployerID)
	if err != nil {
		return nil, err
	}
	employer, err := store.DecodeEmployer(employerDoc)
	if err != nil {
		return nil, err
	}

	return &core.JobView{
		ID:          job.ID,
		Employer:    employer,
		Position:    job.Position,
		Description: job.Description,
		Location:    job.Location,
		Season:      job.Season,
		StartDate:   association.StartDate,
		EndDate:     association.EndDate,
	}, nil
}

// findAssociation locates the season-job document for a (user, job) pair.
// Returns nil when there is none.
func (s *JobService) findAssociation(ctx context.Context, userID, jobID string, liveOnly bool) (*core.SeasonJob, error) {
	q := store.Where("user", store.OpEq, userID).Where("job", store.OpEq, jobID)
	if liveOnly {
		q = q.Where("deleted", store.OpEq, false)
	}
	docs, err := s.store.Query(ctx, store.CollectionSeasonJobs, q)
	if err != nil {
		return nil, fmt.Errorf("%w: query season jobs: %w", core.ErrDataUnavailable, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	association, err := store.DecodeSeasonJob(docs[0])
	if err != nil {
		return nil, err
	}
	return &association, nil
}

func (s *JobService) checkEmployerExists(ctx context.Context, employerID string) error {
	_, err := s.store.Get(ctx, store.CollectionEmployers, employerID)
	if errors.Is(err, store.ErrNotFound) {
		return core.ErrUnknownEmployer
	}
	if err != nil {
		return fmt.Errorf("%w: check employer: %w", core.ErrDataUnavailable, err)
	}
	return nil
}

func validateJobFields(userID, employerID, position string, start, end core.Date) error {
	if userID == "" {
		return core.ErrUserRequired
	}
	if strings.TrimSpace(employerID) == "" {
		return core.ErrEmployerRequired
	}
	if strings.TrimSpace(position) == "" {
		return core.ErrEmptyPosition
	}
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if start.After(end.Time) {
		return core.ErrInvalidDateRange
	}
	return nil
}
