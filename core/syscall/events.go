package syscall

import (
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// emitEvent services `emit_event(keys, data)`. args is length-prefixed:
// [nKeys, key0..keyN-1, nData, data0..dataM-1].
func (h *Handler) emitEvent(args []felt.Felt) ([]felt.Felt, error) {
	keys, rest, err := takePrefixed(args)
	if err != nil {
		return nil, err
	}
	data, _, err := takePrefixed(rest)
	if err != nil {
		return nil, err
	}

	order := h.deps.TxContext.NextEventOrder()
	h.deps.Recorder.RecordEvent(execution.OrderedEvent{Order: order, Keys: keys, Data: data})
	return nil, nil
}

// sendMessageToL1 services `send_message_to_l1(to, payload)`. args is
// [to, nPayload, payload0..payloadN-1].
func (h *Handler) sendMessageToL1(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) < 1 {
		return nil, ErrMalformedArgs
	}
	to := args[0]
	payload, _, err := takePrefixed(args[1:])
	if err != nil {
		return nil, err
	}

	order := h.deps.TxContext.NextMessageOrder()
	h.deps.Recorder.RecordMessage(execution.OrderedMessage{Order: order, ToAddress: to, Payload: payload})
	return nil, nil
}

// takePrefixed reads a `[count, v0..vCount-1]` length-prefixed slice off
// the front of args and returns (values, remainder).
func takePrefixed(args []felt.Felt) ([]felt.Felt, []felt.Felt, error) {
	if len(args) < 1 {
		return nil, nil, ErrMalformedArgs
	}
	n := args[0].Uint64()
	if uint64(len(args)-1) < n {
		return nil, nil, ErrMalformedArgs
	}
	return args[1 : 1+n], args[1+n:], nil
}
