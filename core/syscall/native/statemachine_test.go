package native

import (
	"io"
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/stretchr/testify/require"
)

type pipeRW struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p pipeRW) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipeRW) Write(b []byte) (int, error) { return p.w.Write(b) }

type echoNested struct{ calls int }

func (e *echoNested) ExecuteNested(req *ExecuteProgram) (*ExecutionResult, error) {
	e.calls++
	return &ExecutionResult{ID: req.ID, Gas: req.Gas - 1}, nil
}

// newLoopback builds two Conns sharing a pair of pipes, so a test can play
// both "engine side" and "executor side" of the protocol.
func newLoopback() (*Conn, *Conn) {
	r1, w1 := io.Pipe()
	r2, w2 := io.Pipe()
	engineSide := NewConn(pipeRW{r: r1, w: w2})
	executorSide := NewConn(pipeRW{r: r2, w: w1})
	return engineSide, executorSide
}

func TestRequestSyscallReturnsAnswer(t *testing.T) {
	engineConn, executorConn := newLoopback()
	session := NewSession(engineConn, &echoNested{})

	done := make(chan error, 1)
	go func() {
		req, err := executorConn.Receive()
		if err != nil {
			done <- err
			return
		}
		if req.Kind != KindSyscallRequest || req.SyscallName != SyscallStorageRead {
			done <- io.ErrUnexpectedEOF
			return
		}
		got := req.args()
		if len(got) != 1 || !got[0].Equal(felt.FromUint64(7)) {
			done <- io.ErrUnexpectedEOF
			return
		}
		done <- executorConn.Send(&Envelope{
			Kind:          KindSyscallAnswer,
			SyscallAnswer: &SyscallAnswer{Retdata: []FeltBytes{toWire(felt.FromUint64(99))}, Gas: req.SyscallRequest.Gas - 1},
		})
	}()

	answer, err := session.RequestSyscall(SyscallStorageRead, []felt.Felt{felt.FromUint64(7)}, 100)
	require.NoError(t, err)
	require.NoError(t, <-done)
	require.Len(t, answer.Retdata, 1)
	require.True(t, fromWire(answer.Retdata[0]).Equal(felt.FromUint64(99)))
	require.Equal(t, uint64(99), answer.Gas)
	require.Equal(t, StateIdle, session.State())
}

func TestRequestSyscallServicesNestedExecuteProgram(t *testing.T) {
	engineConn, executorConn := newLoopback()
	nested := &echoNested{}
	session := NewSession(engineConn, nested)

	done := make(chan error, 1)
	go func() {
		if _, err := executorConn.Receive(); err != nil {
			done <- err
			return
		}
		if err := executorConn.Send(&Envelope{Kind: KindExecuteProgram, ExecuteProgram: &ExecuteProgram{ID: 1, Gas: 50}}); err != nil {
			done <- err
			return
		}
		result, err := executorConn.Receive()
		if err != nil {
			done <- err
			return
		}
		if result.Kind != KindExecutionResult || result.ExecutionResult.ID != 1 {
			done <- io.ErrUnexpectedEOF
			return
		}
		done <- executorConn.Send(&Envelope{Kind: KindSyscallAnswer, SyscallAnswer: &SyscallAnswer{Gas: 40}})
	}()

	answer, err := session.RequestSyscall(SyscallCallContract, nil, 50)
	require.NoError(t, err)
	require.NoError(t, <-done)
	require.Equal(t, uint64(40), answer.Gas)
	require.Equal(t, 1, nested.calls)
}

func TestRequestSyscallRejectsConcurrentUse(t *testing.T) {
	engineConn, _ := newLoopback()
	session := NewSession(engineConn, &echoNested{})
	session.state = StateAwaitingAnswer

	_, err := session.RequestSyscall(SyscallKeccak, nil, 10)
	require.ErrorIs(t, err, ErrBusySession)
}
