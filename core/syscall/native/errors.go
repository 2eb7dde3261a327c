package native

import "errors"

// ErrBusySession signals a RequestSyscall call while another is already
// in flight on the same session (the protocol is strictly synchronous:
// one outstanding request at a time).
var ErrBusySession = errors.New("native: session already awaiting a syscall answer")
