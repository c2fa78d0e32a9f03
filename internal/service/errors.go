package service

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Validation and state-conflict errors are always
// raised BEFORE any write; a CascadeFailureError is raised AFTER the primary
// write succeeded, so the caller knows the primary record and its ledger
// entries may be inconsistent and which step broke.

// ValidationError rejects malformed input (missing refusal reason, bad
// client reference, invalid stop list, …).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validacao(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StateConflictError rejects an operation the current state forbids:
// an illegal status transition, an edit outside the 24h window, a locked
// identity field, a second settlement revert.
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string { return e.Msg }

func conflito(format string, args ...interface{}) error {
	return &StateConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a missing order, provider, ledger entry or
// settlement record.
type NotFoundError struct {
	Entidade string
}

func (e *NotFoundError) Error() string { return e.Entidade + " não encontrado" }

func naoEncontrado(entidade string) error {
	return &NotFoundError{Entidade: entidade}
}

// CascadeFailureError wraps a failure in a ledger cascade step that ran
// after the primary record was already written.
type CascadeFailureError struct {
	Etapa string
	Err   error
}

func (e *CascadeFailureError) Error() string {
	return fmt.Sprintf("falha na cascata (%s): %v", e.Etapa, e.Err)
}

func (e *CascadeFailureError) Unwrap() error { return e.Err }

func falhaCascata(etapa string, err error) error {
	return &CascadeFailureError{Etapa: etapa, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStateConflict reports whether err is a StateConflictError.
func IsStateConflict(err error) bool {
	var se *StateConflictError
	return errors.As(err, &se)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsCascadeFailure reports whether err is a CascadeFailureError.
func IsCascadeFailure(err error) bool {
	var ce *CascadeFailureError
	return errors.As(err, &ce)
}
