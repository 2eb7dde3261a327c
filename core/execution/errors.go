package execution

import "errors"

// ErrNotDeployedContract is raised when the resolved class hash at the
// target address is zero (spec.md §4.4 step 1).
var ErrNotDeployedContract = errors.New("execution: contract not deployed at address")

// ErrExecutionFailed wraps a Program-reported Failure or VM-level error,
// per spec.md §4.4 "Failure policy". Its caller decides whether to abort
// the transaction (validate) or capture it as a revert reason (execute).
var ErrExecutionFailed = errors.New("execution: entry point execution failed")

// ErrOutOfResources is raised when the per-transaction step limit is
// exhausted (spec.md §5 "Cancellation / timeouts").
var ErrOutOfResources = errors.New("execution: step limit exceeded")

// ErrConstructorCalldataMismatch is raised by the deploy path when a class
// has no constructor but non-empty constructor calldata was supplied
// (spec.md §4.5 "deploy").
var ErrConstructorCalldataMismatch = errors.New("execution: calldata given to classless constructor")
