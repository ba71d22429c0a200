package core

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionClosed  = errors.New("connection closed")
	ErrPingNotSupported  = errors.New("ping not supported by driver")
	ErrInvalidParams     = errors.New("invalid connection params")
	ErrNoNextRow         = errors.New("no next row")
	ErrMissingGrammar    = errors.New("no grammar configured for connection")
	ErrUnsupportedSchema = errors.New("schema operation not supported by grammar")
)

// ConnectionError is returned when the engine can not be reached, the
// descriptor is invalid or the session was lost.
type ConnectionError struct {
	Driver string
	Cause  error
}

func (e *ConnectionError) Error() string {
	if e.Driver == "" {
		return fmt.Sprintf("connection error: %v", e.Cause)
	}
	return fmt.Sprintf("%s connection error: %v", e.Driver, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError wraps err as a ConnectionError of the given driver.
// Nil errors stay nil and errors that already are connection errors are
// returned unchanged.
func NewConnectionError(driver string, err error) error {
	if err == nil {
		return nil
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return err
	}
	return &ConnectionError{Driver: driver, Cause: err}
}

// ExecutionError is returned when the engine rejects a query or the round
// trip fails on an established connection.
type ExecutionError struct {
	Query string
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NormalizationError is reserved for malformed column metadata.
// The normalizer passes malformed metadata through instead of returning it.
type NormalizationError struct {
	Column string
	Cause  error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error on column %q: %v", e.Column, e.Cause)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// executionError classifies a driver failure. Connection errors reported by
// the driver keep their class, everything else becomes an ExecutionError.
func executionError(query string, err error) error {
	if err == nil {
		return nil
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return err
	}
	return &ExecutionError{Query: query, Cause: err}
}
