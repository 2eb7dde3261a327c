package class

import "errors"

// ErrEntryPointNotFound signals that no entry point matches the requested
// selector, and no default entry point exists for this type either.
var ErrEntryPointNotFound = errors.New("entry point not found")

// ErrNonUniqueEntryPoint signals that two entries share the requested
// selector within the same entry-point-type table.
var ErrNonUniqueEntryPoint = errors.New("non-unique entry point")

// ErrInvalidEntryPoints signals a structurally malformed entry-point table.
var ErrInvalidEntryPoints = errors.New("invalid entry points")
