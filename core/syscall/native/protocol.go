// Package native implements the request/response IPC protocol the engine
// speaks to an out-of-process Sierra native executor (spec.md §4.5
// "Cross-process native executor"): a framed message stream carrying
// syscall requests/answers and re-entrant ExecuteProgram calls.
package native

import (
	"github.com/gogo/protobuf/proto"

	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// Kind discriminates which variant of Envelope is populated, standing in
// for the protocol's Rust-side `enum Message` / `enum SyscallRequest` /
// `enum SyscallAnswer` tags (supplemented from
// `src/bin/native_executor.rs`'s message loop).
type Kind int32

const (
	KindPing Kind = iota
	KindAck
	KindKill
	KindExecuteProgram
	KindExecutionResult
	KindSyscallRequest
	KindSyscallAnswer
)

// SyscallName mirrors core/syscall's dispatch names, repeated here so the
// wire protocol does not need to import core/syscall (which itself
// depends on core/execution, avoiding a three-way cycle through native).
type SyscallName int32

const (
	SyscallStorageRead SyscallName = iota
	SyscallStorageWrite
	SyscallCallContract
	SyscallLibraryCall
	SyscallDeploy
	SyscallEmitEvent
	SyscallSendMessageToL1
	SyscallGetExecutionInfo
	SyscallReplaceClass
	SyscallKeccak
)

// FeltBytes is the wire representation of a field element: 32 big-endian
// bytes, matching core/felt.Felt.Bytes.
type FeltBytes []byte

func toWire(f felt.Felt) FeltBytes {
	b := f.Bytes()
	return FeltBytes(b[:])
}

func fromWire(b FeltBytes) felt.Felt {
	return felt.FromBytes(b)
}

// SyscallRequest carries one outgoing syscall call, framed with the
// remaining gas budget (spec.md §4.5: "each request carries the remaining
// gas").
type SyscallRequest struct {
	Name FeltBytes   `protobuf:"bytes,1,opt,name=name"`
	Args []FeltBytes `protobuf:"bytes,2,rep,name=args"`
	Gas  uint64      `protobuf:"varint,3,opt,name=gas"`
}

func (m *SyscallRequest) Reset()         { *m = SyscallRequest{} }
func (m *SyscallRequest) String() string { return proto.CompactTextString(m) }
func (*SyscallRequest) ProtoMessage()    {}

// SyscallAnswer carries one syscall's result, with the gas remaining
// after it ran (spec.md §4.5: "every response carries the remaining gas
// after the syscall").
type SyscallAnswer struct {
	Retdata []FeltBytes `protobuf:"bytes,1,rep,name=retdata"`
	Failure string      `protobuf:"bytes,2,opt,name=failure"`
	Gas     uint64      `protobuf:"varint,3,opt,name=gas"`
}

func (m *SyscallAnswer) Reset()         { *m = SyscallAnswer{} }
func (m *SyscallAnswer) String() string { return proto.CompactTextString(m) }
func (*SyscallAnswer) ProtoMessage()    {}

// ExecuteProgram is the executor's re-entrant request to run a nested
// class (the native side's own call_contract/library_call/deploy,
// serviced back through the engine per spec.md §4.5).
type ExecuteProgram struct {
	ID        uint64      `protobuf:"varint,1,opt,name=id"`
	ClassHash FeltBytes   `protobuf:"bytes,2,opt,name=class_hash"`
	Selector  FeltBytes   `protobuf:"bytes,3,opt,name=selector"`
	Calldata  []FeltBytes `protobuf:"bytes,4,rep,name=calldata"`
	Gas       uint64      `protobuf:"varint,5,opt,name=gas"`
}

func (m *ExecuteProgram) Reset()         { *m = ExecuteProgram{} }
func (m *ExecuteProgram) String() string { return proto.CompactTextString(m) }
func (*ExecuteProgram) ProtoMessage()    {}

// ExecutionResult answers an ExecuteProgram by ID.
type ExecutionResult struct {
	ID      uint64      `protobuf:"varint,1,opt,name=id"`
	Retdata []FeltBytes `protobuf:"bytes,2,rep,name=retdata"`
	Failure string      `protobuf:"bytes,3,opt,name=failure"`
	Gas     uint64      `protobuf:"varint,4,opt,name=gas"`
}

func (m *ExecutionResult) Reset()         { *m = ExecutionResult{} }
func (m *ExecutionResult) String() string { return proto.CompactTextString(m) }
func (*ExecutionResult) ProtoMessage()    {}

// Envelope is the single framed message type exchanged over the
// transport: exactly one of its variant fields is populated, selected by
// Kind. A single envelope message (rather than a generated oneof) keeps
// this hand-written protocol file small while still marshaling through
// gogo/protobuf's reflection-based Marshal/Unmarshal.
type Envelope struct {
	Kind            Kind             `protobuf:"varint,1,opt,name=kind"`
	AckID           uint64           `protobuf:"varint,2,opt,name=ack_id"`
	SyscallName     SyscallName      `protobuf:"varint,3,opt,name=syscall_name"`
	SyscallRequest  *SyscallRequest  `protobuf:"bytes,4,opt,name=syscall_request"`
	SyscallAnswer   *SyscallAnswer   `protobuf:"bytes,5,opt,name=syscall_answer"`
	ExecuteProgram  *ExecuteProgram  `protobuf:"bytes,6,opt,name=execute_program"`
	ExecutionResult *ExecutionResult `protobuf:"bytes,7,opt,name=execution_result"`
}

func (m *Envelope) Reset()         { *m = Envelope{} }
func (m *Envelope) String() string { return proto.CompactTextString(m) }
func (*Envelope) ProtoMessage()    {}

func newSyscallRequest(name SyscallName, args []felt.Felt, gas uint64) *Envelope {
	wire := make([]FeltBytes, len(args))
	for i, a := range args {
		wire[i] = toWire(a)
	}
	return &Envelope{
		Kind:           KindSyscallRequest,
		SyscallName:    name,
		SyscallRequest: &SyscallRequest{Args: wire, Gas: gas},
	}
}

func (e *Envelope) args() []felt.Felt {
	if e.SyscallRequest == nil {
		return nil
	}
	out := make([]felt.Felt, len(e.SyscallRequest.Args))
	for i, a := range e.SyscallRequest.Args {
		out[i] = fromWire(a)
	}
	return out
}
