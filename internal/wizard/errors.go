package wizard

import (
	"errors"
	"fmt"
)

// Lookup failures. Each conversion precondition gets its own sentinel so
// the caller can report exactly which one was violated.
var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingNotConfirmed     = errors.New("booking is not confirmed")
	ErrBookingAlreadyConverted = errors.New("booking has already been converted")
	ErrPackageNotFound         = errors.New("package not found")
	ErrVenueNotFound           = errors.New("venue not found")
)

// Session and navigation
var (
	ErrNoActiveSession  = errors.New("no active wizard session")
	ErrRecoveryPending  = errors.New("a draft recovery prompt is awaiting resolution")
	ErrNoRecoveryOffer  = errors.New("no draft recovery is pending")
	ErrStepNotReady     = errors.New("current step is not complete")
	ErrStaleLookup      = errors.New("lookup response superseded by a newer edit")
	ErrUnknownComponent = errors.New("unknown component line")
)

// Submission guard
var (
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrSubmissionCompleted = errors.New("this session already completed a submission")
)

// ValidationError is a user-correctable submission blocker. It never leaves
// wizard state modified; the failing field and a specific message are
// surfaced inline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SubmissionError carries the most specific message available when a
// dispatch fails: the collaborator's own diagnostic when it supplied one,
// the transport error otherwise. Wizard state stays intact for retry.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "event creation failed"
}

func (e *SubmissionError) Unwrap() error { return e.Err }
