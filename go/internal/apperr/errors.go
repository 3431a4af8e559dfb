// Package apperr holds the error kinds returned by the roster and team engines.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is wrapped when a team or roster entry does not exist
	ErrNotFound = errors.New("not found")

	ErrDuplicateMembership = errors.New("person already has an active membership on this team")
	ErrJerseyConflict      = errors.New("jersey number conflict")
	ErrCoachUnavailable    = errors.New("coach is already primary coach of another team this season")
	ErrRosterFull          = errors.New("team roster is full")
	ErrAlreadyArchived     = errors.New("team is archived")
)

// Kind classifies an error for callers that only need the category
type Kind string

const (
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindGuard       Kind = "guard"
	KindNotFound    Kind = "not_found"
	KindTransaction Kind = "transaction"
)

// ValidationError reports every invalid field at once; the operation was not attempted.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message against a field
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge copies all messages of other into e
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		e.Fields[field] = append(e.Fields[field], msgs...)
	}
}

// Empty reports whether no field has a message
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e when it holds messages and nil otherwise, so callers can
// `return verr.OrNil()` without returning a typed nil.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports a collision with existing state; nothing was written.
type ConflictError struct {
	Messages []string `json:"messages"`
	Err      error    `json:"-"`
}

func NewConflict(err error, messages ...string) *ConflictError {
	if len(messages) == 0 {
		messages = []string{err.Error()}
	}
	return &ConflictError{Messages: messages, Err: err}
}

func (e *ConflictError) Error() string {
	return "conflict: " + strings.Join(e.Messages, "; ")
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// GuardCondition names a precondition that blocked an archival
type GuardCondition string

const (
	GuardActiveMembers GuardCondition = "active_members"
	GuardFutureEvents  GuardCondition = "future_events"
)

// GuardViolation lists every guard that failed
type GuardViolation struct {
	TeamID     int64            `json:"team_id"`
	Conditions []GuardCondition `json:"conditions"`
}

func (e *GuardViolation) Error() string {
	conds := make([]string, len(e.Conditions))
	for i, c := range e.Conditions {
		conds[i] = string(c)
	}
	return fmt.Sprintf("team %d cannot be archived: %s", e.TeamID, strings.Join(conds, ", "))
}

// Has reports whether cond is among the failing conditions
func (e *GuardViolation) Has(cond GuardCondition) bool {
	for _, c := range e.Conditions {
		if c == cond {
			return true
		}
	}
	return false
}

// TransactionFailure hides the cause of an aborted multi-step write from the
// caller's message. The cause stays reachable through Unwrap for logging.
type TransactionFailure struct {
	Op    string
	cause error
}

func NewTransactionFailure(op string, cause error) *TransactionFailure {
	return &TransactionFailure{Op: op, cause: cause}
}

func (e *TransactionFailure) Error() string {
	return e.Op + " failed"
}

func (e *TransactionFailure) Unwrap() error {
	return e.cause
}

// KindOf classifies err. Unknown errors count as transaction failures.
func KindOf(err error) Kind {
	var (
		verr  *ValidationError
		cerr  *ConflictError
		gerr  *GuardViolation
		txErr *TransactionFailure
	)
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.As(err, &cerr):
		return KindConflict
	case errors.As(err, &gerr):
		return KindGuard
	case errors.As(err, &txErr):
		return KindTransaction
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindTransaction
	}
}

// IsDomain reports whether err is one of the typed outcomes that should reach
// the caller as-is rather than being folded into a TransactionFailure.
func IsDomain(err error) bool {
	var (
		verr *ValidationError
		cerr *ConflictError
		gerr *GuardViolation
	)
	return errors.As(err, &verr) || errors.As(err, &cerr) || errors.As(err, &gerr) || errors.Is(err, ErrNotFound)
}
