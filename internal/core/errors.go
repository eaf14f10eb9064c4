package core

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Store-level failures wrap ErrDataUnavailable, dangling
// document references wrap ErrReferenceResolution, and caller-supplied field
// problems wrap ErrValidation. Absent single entities are reported as nil
// results, not errors.
var (
	ErrDataUnavailable     = errors.New("data unavailable")
	ErrReferenceResolution = errors.New("reference resolution failed")
	ErrValidation          = errors.New("validation failed")

	ErrNoCurrentSeason = errors.New("no current season")
	ErrAmbiguousSeason = errors.New("more than one current season")
)

// Field-level validation errors. All of them match ErrValidation via errors.Is.
var (
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidHours       = fmt.Errorf("%w: invalid hours worked", ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: start date after end date", ErrValidation)
	ErrUserRequired       = fmt.Errorf("%w: user is required", ErrValidation)
	ErrJobRequired        = fmt.Errorf("%w: job is required", ErrValidation)
	ErrEmployerRequired   = fmt.Errorf("%w: employer is required", ErrValidation)
	ErrEmptyPosition      = fmt.Errorf("%w: empty position", ErrValidation)
	ErrEmptyTag           = fmt.Errorf("%w: empty tag", ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: empty name", ErrValidation)
	ErrEmptyEmail         = fmt.Errorf("%w: empty email", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long (max 200 characters)", ErrValidation)
	ErrUnknownJob         = fmt.Errorf("%w: referenced job does not exist", ErrValidation)
	ErrUnknownEmployer    = fmt.Errorf("%w: referenced employer does not exist", ErrValidation)
)
