package syscall

import (
	"fmt"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("core/syscall/handler")

// Handler is the C8 syscall dispatcher. One Handler is built per entry-point
// execution (see NewFactory), holding a mutable borrow of the running
// state, the block and transaction contexts, the shared resource manager,
// and the CallInfo currently being built (as a Recorder) — the same
// bundle-of-contexts shape the execution engine assembles before handing
// control to a Program, mirrored here on the receiving side.
type Handler struct {
	deps execution.HandlerDeps
}

// NewFactory returns an execution.HandlerFactory that builds a Handler,
// wiring the syscall table into the entry-point execution loop without
// core/execution ever importing this package.
func NewFactory() execution.HandlerFactory {
	return func(deps execution.HandlerDeps) class.Syscalls {
		return &Handler{deps: deps}
	}
}

// Dispatch implements class.Syscalls. It bumps the resource manager's
// per-syscall counter for every dispatched name, before performing the
// effect and whether or not the call succeeds; an unrecognized name is
// counted too before it is rejected with ErrUnknownSyscall.
func (h *Handler) Dispatch(name string, args []felt.Felt) ([]felt.Felt, error) {
	h.deps.Resources.SyscallCounter.Increment(name)

	switch name {
	case StorageRead:
		return h.storageRead(args)
	case StorageWrite:
		return h.storageWrite(args)
	case EmitEvent:
		return h.emitEvent(args)
	case SendMessageToL1:
		return h.sendMessageToL1(args)
	case CallContract:
		return h.callContract(args)
	case LibraryCall:
		return h.libraryCall(args)
	case Deploy:
		return h.deploy(args)
	case ReplaceClass:
		return h.replaceClass(args)
	case GetExecutionInfo:
		return h.getExecutionInfo(args)
	case GetBlockHash:
		return h.getBlockHash(args)
	case Keccak:
		return h.keccak(args)
	case Secp256k1Add, Secp256k1Mul, Secp256k1GetPointFromX, Secp256k1GetXY,
		Secp256r1Add, Secp256r1Mul, Secp256r1GetPointFromX, Secp256r1GetXY:
		return h.dispatchCurve(name, args)
	default:
		log.Debug("unknown syscall dispatched", "name", name)
		return nil, fmt.Errorf("%w: %s", ErrUnknownSyscall, name)
	}
}
