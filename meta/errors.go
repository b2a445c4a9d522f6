package meta

import (
	"errors"
	"fmt"
)

// ErrCatastrophic marks a search the engine could not complete: the host
// timed out or panicked. Operations that see it are rerun on the fallback
// engine.
var ErrCatastrophic = errors.New("catastrophic matcher failure")

// SearchError is a failed search.
type SearchError struct {
	Strategy Strategy
	Err      error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	return "jscompat: " + e.Strategy.String() + " search: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SearchError) Unwrap() error {
	return e.Err
}

func catastrophic(s Strategy, cause interface{}) *SearchError {
	return &SearchError{
		Strategy: s,
		Err:      fmt.Errorf("%w: %v", ErrCatastrophic, cause),
	}
}

// CompileError represents a pattern the host engine rejected.
type CompileError struct {
	Pattern string // dialect source
	Host    string // transpiled source that was rejected
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("jscompat: invalid pattern /%s/: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// FlagError is an invalid flag string.
type FlagError struct {
	Flags string
	Flag  rune
	// Duplicate is true when Flag is valid but repeated.
	Duplicate bool
}

// Error implements the error interface.
func (e *FlagError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("jscompat: invalid flags %q: duplicate flag %q", e.Flags, e.Flag)
	}
	return fmt.Sprintf("jscompat: invalid flags %q: unknown flag %q", e.Flags, e.Flag)
}
