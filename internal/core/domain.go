package core

import (
	"strings"
	"time"
)

type (
	// Date is a calendar date; the time-of-day component is always midnight UTC.
	Date struct {
		time.Time
	}

	// Profile holds the user-editable display fields of a user document.
	Profile struct {
		Name    string
		Surname string
		Phone   string
		Email   string
	}

	// User is the stored user record. Season jobs live in their own
	// collection and are looked up by user id, not embedded here.
	User struct {
		ID      string
		Profile Profile
	}

	// Employer is shared reference data; immutable once created.
	Employer struct {
		ID   string
		Name string
	}

	// Season is a working season. At most one season is current at any
	// time; SeasonService.SetCurrent is the only writer of the flag.
	Season struct {
		ID      string
		Year    int64
		Current bool
	}

	// Location is a geocoded point with a human-readable label.
	Location struct {
		Label     string
		Latitude  float64
		Longitude float64
	}

	// Job is a canonical job record, referenced by season-job entries and
	// incomes. Soft deletion happens on the season-job entry, never here.
	Job struct {
		ID          string
		EmployerID  string
		Position    string
		Description string
		Location    Location
		Season      int64
		StartDate   Date
		EndDate     Date
		Active      bool
		Deleted     bool
	}

	// SeasonJob records that a user held a job during a season. It is a
	// standalone join document so that add, update and soft-delete are
	// single-document writes.
	SeasonJob struct {
		ID        string
		UserID    string
		JobID     string
		SeasonID  string
		StartDate Date
		EndDate   Date
		Deleted   bool
	}

	// JobView is the denormalized read model returned to callers: job
	// fields combined with the resolved employer and the season-job date
	// range.
	JobView struct {
		ID          string
		Employer    Employer
		Position    string
		Description string
		Location    Location
		Season      int64
		StartDate   Date
		EndDate     Date
	}

	// Income is an earnings record tied to a job.
	Income struct {
		ID          string
		UserID      string
		JobID       string
		Season      int64
		BaseEarned  Money
		TipsEarned  Money
		HoursWorked int64
		Date        Date
	}

	// Expense is a spending record. Not tied to a job.
	Expense struct {
		ID          string
		UserID      string
		Season      int64
		Amount      Money
		Tag         string
		Description string
		Date        Date
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.UserID) == "" {
		return ErrUserRequired
	}
	if strings.TrimSpace(i.JobID) == "" {
		return ErrJobRequired
	}
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if i.BaseEarned.Cents < 0 || i.TipsEarned.Cents < 0 {
		return ErrInvalidAmount
	}
	if i.HoursWorked < 0 {
		return ErrInvalidHours
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrUserRequired
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Tag) == "" {
		return ErrEmptyTag
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}
