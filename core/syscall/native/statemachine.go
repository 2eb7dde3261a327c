package native

import (
	"fmt"

	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// State is the session's position in the synchronous request/response
// cycle spec.md §4.5 describes: `Idle -> AwaitingSyscallAnswer ->
// (possibly ExecutingNested) -> Idle`.
type State int

const (
	StateIdle State = iota
	StateAwaitingAnswer
	StateExecutingNested
)

// NestedExecutor services an ExecuteProgram request the native executor
// sends while this side awaits a syscall answer (re-entrant deploy /
// call_contract from inside a native call, spec.md §4.5).
type NestedExecutor interface {
	ExecuteNested(req *ExecuteProgram) (*ExecutionResult, error)
}

// Session drives one native-executor subprocess conversation over a Conn,
// tracking State so a caller can never issue a second syscall request
// while one is already in flight.
type Session struct {
	conn   *Conn
	nested NestedExecutor
	state  State
}

// NewSession wraps conn, servicing nested requests via nested.
func NewSession(conn *Conn, nested NestedExecutor) *Session {
	return &Session{conn: conn, nested: nested, state: StateIdle}
}

// State reports the session's current position.
func (s *Session) State() State { return s.state }

// RequestSyscall sends one SyscallRequest and blocks, servicing any
// nested ExecuteProgram requests the executor issues in the meantime,
// until the matching SyscallAnswer arrives.
func (s *Session) RequestSyscall(name SyscallName, args []felt.Felt, gas uint64) (*SyscallAnswer, error) {
	if s.state != StateIdle {
		return nil, ErrBusySession
	}
	s.state = StateAwaitingAnswer
	defer func() { s.state = StateIdle }()

	if err := s.conn.Send(newSyscallRequest(name, args, gas)); err != nil {
		return nil, err
	}

	for {
		env, err := s.conn.Receive()
		if err != nil {
			return nil, err
		}

		switch env.Kind {
		case KindSyscallAnswer:
			return env.SyscallAnswer, nil

		case KindExecuteProgram:
			s.state = StateExecutingNested
			result, err := s.nested.ExecuteNested(env.ExecuteProgram)
			if err != nil {
				return nil, err
			}
			if err := s.conn.Send(&Envelope{Kind: KindExecutionResult, ExecutionResult: result}); err != nil {
				return nil, err
			}
			s.state = StateAwaitingAnswer

		case KindPing:
			if err := s.conn.Send(&Envelope{Kind: KindPing}); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("native: unexpected message kind %d while awaiting a syscall answer", env.Kind)
		}
	}
}

// Kill tells the executor subprocess to terminate.
func (s *Session) Kill() error {
	return s.conn.Send(&Envelope{Kind: KindKill})
}
