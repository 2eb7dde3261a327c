package syscall

import "errors"

// ErrUnknownSyscall is returned when a Program dispatches a name this
// handler does not recognize.
var ErrUnknownSyscall = errors.New("syscall: unknown syscall")

// ErrMalformedArgs is returned when a syscall's argument vector doesn't
// match the shape its encoding requires (spec.md §4.5's per-syscall arg
// table, documented on each handler method).
var ErrMalformedArgs = errors.New("syscall: malformed arguments")

// ErrConstructorCalldataMismatch mirrors the deploy syscall's failure mode
// (spec.md §4.5 "deploy"): a class with no constructor was given non-empty
// constructor calldata.
var ErrConstructorCalldataMismatch = errors.New("syscall: calldata given to classless constructor")

// ErrInvalidPoint is returned by the secp256k1/secp256r1 family when a
// coordinate does not lie on the curve.
var ErrInvalidPoint = errors.New("syscall: point is not on curve")
