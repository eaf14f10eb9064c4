package store

import (
	"fmt"
	"time"

	"watwallet/internal/core"
)

// Typed (de)serialization boundary. Every document that crosses the Store
// interface is encoded and decoded here, and decoding fails fast on a
// missing or mistyped field instead of silently defaulting it.

// DecodeError reports the document and field that failed to decode.
type DecodeError struct {
	Collection string
	ID         string
	Field      string
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s/%s: field %q: %s", e.Collection, e.ID, e.Field, e.Reason)
}

func decodeErr(collection string, doc Document, field, reason string) error {
	return &DecodeError{Collection: collection, ID: doc.ID, Field: field, Reason: reason}
}

func fieldString(collection string, doc Document, field string) (string, error) {
	v, ok := doc.Fields[field]
	if !ok {
		return "", decodeErr(collection, doc, field, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", decodeErr(collection, doc, field, fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

func fieldBool(collection string, doc Document, field string) (bool, error) {
	v, ok := doc.Fields[field]
	if !ok {
		return false, decodeErr(collection, doc, field, "missing")
	}
	b, ok := v.(bool)
	if !ok {
		return false, decodeErr(collection, doc, field, fmt.Sprintf("expected bool, got %T", v))
	}
	return b, nil
}

// fieldInt64 accepts int64 and float64; JSON-backed stores surface numbers
// as float64.
func fieldInt64(collection string, doc Document, field string) (int64, error) {
	v, ok := doc.Fields[field]
	if !ok {
		return 0, decodeErr(collection, doc, field, "missing")
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, decodeErr(collection, doc, field, fmt.Sprintf("expected integer, got %T", v))
	}
}

func fieldFloat64(collection string, doc Document, field string) (float64, error) {
	v, ok := doc.Fields[field]
	if !ok {
		return 0, decodeErr(collection, doc, field, "missing")
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, decodeErr(collection, doc, field, fmt.Sprintf("expected number, got %T", v))
	}
}

// fieldDate accepts time.Time and RFC 3339 strings.
func fieldDate(collection string, doc Document, field string) (core.Date, error) {
	v, ok := doc.Fields[field]
	if !ok {
		return core.Date{}, decodeErr(collection, doc, field, "missing")
	}
	switch t := v.(type) {
	case time.Time:
		return core.Date{Time: t}, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return core.Date{}, decodeErr(collection, doc, field, fmt.Sprintf("bad timestamp %q", t))
		}
		return core.Date{Time: parsed}, nil
	default:
		return core.Date{}, decodeErr(collection, doc, field, fmt.Sprintf("expected timestamp, got %T", v))
	}
}

func EncodeUser(u core.User) map[string]any {
	return map[string]any{
		"name":    u.Profile.Name,
		"surname": u.Profile.Surname,
		"phone":   u.Profile.Phone,
		"email":   u.Profile.Email,
	}
}

func DecodeUser(doc Document) (core.User, error) {
	var (
		u   core.User
		err error
	)
	u.ID = doc.ID
	if u.Profile.Name, err = fieldString(CollectionUsers, doc, "name"); err != nil {
		return core.User{}, err
	}
	if u.Profile.Surname, err = fieldString(CollectionUsers, doc, "surname"); err != nil {
		return core.User{}, err
	}
	if u.Profile.Phone, err = fieldString(CollectionUsers, doc, "phone"); err != nil {
		return core.User{}, err
	}
	if u.Profile.Email, err = fieldString(CollectionUsers, doc, "email"); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func EncodeEmployer(e core.Employer) map[string]any {
	return map[string]any{"name": e.Name}
}

func DecodeEmployer(doc Document) (core.Employer, error) {
	name, err := fieldString(CollectionEmployers, doc, "name")
	if err != nil {
		return core.Employer{}, err
	}
	return core.Employer{ID: doc.ID, Name: name}, nil
}

func EncodeSeason(s core.Season) map[string]any {
	return map[string]any{
		"season":  s.Year,
		"current": s.Current,
	}
}

func DecodeSeason(doc Document) (core.Season, error) {
	year, err := fieldInt64(CollectionSeasons, doc, "season")
	if err != nil {
		return core.Season{}, err
	}
	current, err := fieldBool(CollectionSeasons, doc, "current")
	if err != nil {
		return core.Season{}, err
	}
	return core.Season{ID: doc.ID, Year: year, Current: current}, nil
}

func EncodeJob(j core.Job) map[string]any {
	return map[string]any{
		"employer":     j.EmployerID,
		"position":     j.Position,
		"description":  j.Description,
		"locationInfo": j.Location.Label,
		"latitude":     j.Location.Latitude,
		"longitude":    j.Location.Longitude,
		"season":       j.Season,
		"startDate":    j.StartDate.Time,
		"endDate":      j.EndDate.Time,
		"active":       j.Active,
		"deleted":      j.Deleted,
	}
}

func DecodeJob(doc Document) (core.Job, error) {
	var (
		j   core.Job
		err error
	)
	j.ID = doc.ID
	if j.EmployerID, err = fieldString(CollectionJobs, doc, "employer"); err != nil {
		return core.Job{}, err
	}
	if j.Position, err = fieldString(CollectionJobs, doc, "position"); err != nil {
		return core.Job{}, err
	}
	if j.Description, err = fieldString(CollectionJobs, doc, "description"); err != nil {
		return core.Job{}, err
	}
	if j.Location.Label, err = fieldString(CollectionJobs, doc, "locationInfo"); err != nil {
		return core.Job{}, err
	}
	if j.Location.Latitude, err = fieldFloat64(CollectionJobs, doc, "latitude"); err != nil {
		return core.Job{}, err
	}
	if j.Location.Longitude, err = fieldFloat64(CollectionJobs, doc, "longitude"); err != nil {
		return core.Job{}, err
	}
	if j.Season, err = fieldInt64(CollectionJobs, doc, "season"); err != nil {
		return core.Job{}, err
	}
	if j.StartDate, err = fieldDate(CollectionJobs, doc, "startDate"); err != nil {
		return core.Job{}, err
	}
	if j.EndDate, err = fieldDate(CollectionJobs, doc, "endDate"); err != nil {
		return core.Job{}, err
	}
	if j.Active, err = fieldBool(CollectionJobs, doc, "active"); err != nil {
		return core.Job{}, err
	}
	if j.Deleted, err = fieldBool(CollectionJobs, doc, "deleted"); err != nil {
		return core.Job{}, err
	}
	return j, nil
}

func EncodeSeasonJob(sj core.SeasonJob) map[string]any {
	return map[string]any{
		"user":      sj.UserID,
		"job":       sj.JobID,
		"season":    sj.SeasonID,
		"startDate": sj.StartDate.Time,
		"endDate":   sj.EndDate.Time,
		"deleted":   sj.Deleted,
	}
}

func DecodeSeasonJob(doc Document) (core.SeasonJob, error) {
	var (
		sj  core.SeasonJob
		err error
	)
	sj.ID = doc.ID
	if sj.UserID, err = fieldString(CollectionSeasonJobs, doc, "user"); err != nil {
		return core.SeasonJob{}, err
	}
	if sj.JobID, err = fieldString(CollectionSeasonJobs, doc, "job"); err != nil {
		return core.SeasonJob{}, err
	}
	if sj.SeasonID, err = fieldString(CollectionSeasonJobs, doc, "season"); err != nil {
		return core.SeasonJob{}, err
	}
	if sj.StartDate, err = fieldDate(CollectionSeasonJobs, doc, "startDate"); err != nil {
		return core.SeasonJob{}, err
	}
	if sj.EndDate, err = fieldDate(CollectionSeasonJobs, doc, "endDate"); err != nil {
		return core.SeasonJob{}, err
	}
	if sj.Deleted, err = fieldBool(CollectionSeasonJobs, doc, "deleted"); err != nil {
		return core.SeasonJob{}, err
	}
	return sj, nil
}

func EncodeIncome(i core.Income) map[string]any {
	return map[string]any{
		"user":        i.UserID,
		"job":         i.JobID,
		"season":      i.Season,
		"baseEarned":  i.BaseEarned.Cents,
		"tipsEarned":  i.TipsEarned.Cents,
		"hoursWorked": i.HoursWorked,
		"date":        i.Date.Time,
	}
}

func DecodeIncome(doc Document) (core.Income, error) {
	var (
		i   core.Income
		err error
	)
	i.ID = doc.ID
	if i.UserID, err = fieldString(CollectionIncomes, doc, "user"); err != nil {
		return core.Income{}, err
	}
	if i.JobID, err = fieldString(CollectionIncomes, doc, "job"); err != nil {
		return core.Income{}, err
	}
	if i.Season, err = fieldInt64(CollectionIncomes, doc, "season"); err != nil {
		return core.Income{}, err
	}
	base, err := fieldInt64(CollectionIncomes, doc, "baseEarned")
	if err != nil {
		return core.Income{}, err
	}
	i.BaseEarned = core.Money{Cents: base}
	tips, err := fieldInt64(CollectionIncomes, doc, "tipsEarned")
	if err != nil {
		return core.Income{}, err
	}
	i.TipsEarned = core.Money{Cents: tips}
	if i.HoursWorked, err = fieldInt64(CollectionIncomes, doc, "hoursWorked"); err != nil {
		return core.Income{}, err
	}
	if i.Date, err = fieldDate(CollectionIncomes, doc, "date"); err != nil {
		return core.Income{}, err
	}
	return i, nil
}

func EncodeExpense(e core.Expense) map[string]any {
	return map[string]any{
		"user":        e.UserID,
		"season":      e.Season,
		"amount":      e.Amount.Cents,
		"tag":         e.Tag,
		"description": e.Description,
		"date":        e.Date.Time,
	}
}

func DecodeExpense(doc Document) (core.Expense, error) {
	var (
		e   core.Expense
		err error
	)
	e.ID = doc.ID
	if e.UserID, err = fieldString(CollectionExpenses, doc, "user"); err != nil {
		return core.Expense{}, err
	}
	if e.Season, err = fieldInt64(CollectionExpenses, doc, "season"); err != nil {
		return core.Expense{}, err
	}
	amount, err := fieldInt64(CollectionExpenses, doc, "amount")
	if err != nil {
		return core.Expense{}, err
	}
	e.Amount = core.Money{Cents: amount}
	if e.Tag, err = fieldString(CollectionExpenses, doc, "tag"); err != nil {
		return core.Expense{}, err
	}
	if e.Description, err = fieldString(CollectionExpenses, doc, "description"); err != nil {
		return core.Expense{}, err
	}
	if e.Date, err = fieldDate(CollectionExpenses, doc, "date"); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}
