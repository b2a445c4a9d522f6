package jscompat

import "errors"

var (
	// ErrInvalidTarget is returned by Perform when the target is neither a
	// *Regexp nor a string.
	ErrInvalidTarget = errors.New("jscompat: target must be a *Regexp or a string")

	// ErrInvalidOperation is returned by Perform for an unknown Operation.
	ErrInvalidOperation = errors.New("jscompat: invalid operation")
)
