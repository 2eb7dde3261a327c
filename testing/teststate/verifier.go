package teststate

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/stretchr/testify/require"
)

// CallInfoVerifier is a fluent assertion helper over a *execution.CallInfo,
// mirroring the teacher's VMOutputVerifier: each check both asserts and
// returns the verifier, so a test reads as one chained expression.
type CallInfoVerifier struct {
	t    *testing.T
	call *execution.CallInfo
}

// Verify begins a fluent check chain against call.
func Verify(t *testing.T, call *execution.CallInfo) *CallInfoVerifier {
	t.Helper()
	require.NotNil(t, call)
	return &CallInfoVerifier{t: t, call: call}
}

// Succeeds asserts the call (and its whole subtree) produced no failure,
// and checks spec.md §8 invariant #1: every successful call's n_steps is
// strictly positive.
func (v *CallInfoVerifier) Succeeds() *CallInfoVerifier {
	v.t.Helper()
	require.True(v.t, v.call.Succeeded(), "expected call to succeed, failure=%v", v.call.Failure)
	require.Greater(v.t, v.call.Resources.NSteps, uint64(0), "successful call must report n_steps > 0")
	return v
}

// Fails asserts the call itself carries a Failure.
func (v *CallInfoVerifier) Fails() *CallInfoVerifier {
	v.t.Helper()
	require.NotNil(v.t, v.call.Failure)
	return v
}

// Returns asserts the call's retdata equals exactly want.
func (v *CallInfoVerifier) Returns(want ...felt.Felt) *CallInfoVerifier {
	v.t.Helper()
	require.Len(v.t, v.call.Retdata, len(want))
	for i, w := range want {
		require.True(v.t, v.call.Retdata[i].Equal(w), "retdata[%d]: want %s, got %s", i, w.String(), v.call.Retdata[i].String())
	}
	return v
}

// HasInnerCalls asserts the call has exactly n direct inner calls.
func (v *CallInfoVerifier) HasInnerCalls(n int) *CallInfoVerifier {
	v.t.Helper()
	require.Len(v.t, v.call.InnerCalls, n)
	return v
}

// InnerCallKind asserts the i-th inner call carries the given CallKind.
func (v *CallInfoVerifier) InnerCallKind(i int, kind execution.CallKind) *CallInfoVerifier {
	v.t.Helper()
	require.Greater(v.t, len(v.call.InnerCalls), i)
	require.Equal(v.t, kind, v.call.InnerCalls[i].CallKind)
	return v
}

// InnerClassHash asserts the i-th inner call ran classHash.
func (v *CallInfoVerifier) InnerClassHash(i int, classHash felt.ClassHash) *CallInfoVerifier {
	v.t.Helper()
	require.Greater(v.t, len(v.call.InnerCalls), i)
	require.Equal(v.t, classHash, v.call.InnerCalls[i].ClassHash)
	return v
}

// SortedEvents asserts the transaction-wide event stream, sorted by
// emission order (spec.md §3's global ordering), has the given length.
func (v *CallInfoVerifier) SortedEvents(n int) []execution.OrderedEvent {
	v.t.Helper()
	events := v.call.AllEvents()
	require.Len(v.t, events, n)
	return events
}
