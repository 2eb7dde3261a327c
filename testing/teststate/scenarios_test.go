package teststate

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/stretchr/testify/require"
)

// fib reference: fib(1,1,10) == 144.
func TestScenarioFibonacci(t *testing.T) {
	h := NewHarness(t)
	hash := felt.ClassHashFromFelt(felt.FromUint64(1))
	addr := felt.AddressFromFelt(felt.FromUint64(10))
	h.DeclareAndDeploy(hash, addr, FibonacciClass())

	call := h.Invoke(addr, FibSelector, []felt.Felt{felt.One, felt.One, felt.FromUint64(10)})
	Verify(t, call).Succeeds().Returns(felt.FromUint64(144))
}

// library_call: the caller's storage address is used, but the library
// class's code runs — here there's no storage touched, so this mainly
// checks the retdata plumbing and the Delegate call-kind tagging.
func TestScenarioLibraryCallSqrt(t *testing.T) {
	h := NewHarness(t)
	libHash := felt.ClassHashFromFelt(felt.FromUint64(2))
	callerHash := felt.ClassHashFromFelt(felt.FromUint64(3))
	libAddr := felt.AddressFromFelt(felt.FromUint64(20))
	callerAddr := felt.AddressFromFelt(felt.FromUint64(21))

	h.DeclareAndDeploy(libHash, libAddr, SqrtLibraryClass())
	h.DeclareAndDeploy(callerHash, callerAddr, SqrtCallerClass(libHash))

	call := h.Invoke(callerAddr, SqrtCallerSelector, []felt.Felt{felt.FromUint64(81)})
	Verify(t, call).Succeeds().
		HasInnerCalls(1).
		InnerCallKind(0, execution.Delegate).
		InnerClassHash(0, libHash)
	require.True(t, call.InnerCalls[0].Retdata[0].Equal(felt.FromUint64(9)))
}

// call_contract: caller invokes callee's EmitterSelector, which emits one
// event; the event surfaces in the transaction-wide AllEvents() stream
// regardless of which call in the tree actually emitted it.
func TestScenarioCallContractEmitsEvent(t *testing.T) {
	h := NewHarness(t)
	calleeHash := felt.ClassHashFromFelt(felt.FromUint64(4))
	callerHash := felt.ClassHashFromFelt(felt.FromUint64(5))
	calleeAddr := felt.AddressFromFelt(felt.FromUint64(30))
	callerAddr := felt.AddressFromFelt(felt.FromUint64(31))

	h.DeclareAndDeploy(calleeHash, calleeAddr, EmitterClass())
	h.DeclareAndDeploy(callerHash, callerAddr, CallerClass(calleeAddr))

	call := h.Invoke(callerAddr, CallerSelector, nil)
	Verify(t, call).Succeeds().
		HasInnerCalls(1).
		InnerCallKind(0, execution.Call).
		InnerClassHash(0, calleeHash)

	events := Verify(t, call).SortedEvents(1)
	require.True(t, events[0].Keys[0].Equal(felt.FromUint64(0x6E)))
	require.True(t, events[0].Data[0].Equal(felt.One))
}

// replace_class: after upgrade, a fresh invocation of get_number at the
// same address runs the new class's body.
func TestScenarioReplaceClassUpgrade(t *testing.T) {
	h := NewHarness(t)
	oldHash := felt.ClassHashFromFelt(felt.FromUint64(6))
	newHash := felt.ClassHashFromFelt(felt.FromUint64(7))
	addr := felt.AddressFromFelt(felt.FromUint64(40))

	h.DeclareAndDeploy(oldHash, addr, UpgradeableClass(1))
	require.NoError(t, h.Registry.Set(newHash, UpgradeableClass(2)))

	before := h.Invoke(addr, GetNumberSelector, nil)
	Verify(t, before).Succeeds().Returns(felt.FromUint64(1))

	upgrade := h.Invoke(addr, UpgradeSelector, []felt.Felt{newHash.Felt()})
	Verify(t, upgrade).Succeeds()

	after := h.Invoke(addr, GetNumberSelector, nil)
	Verify(t, after).Succeeds().Returns(felt.FromUint64(2))
}

// deploy: DeployerClass, deployed at address 1111, deploys targetClassHash
// at H(salt=1, targetClassHash, calldata=[100], deployer=1111) — a second
// attempt from the same address with the same salt collides.
func TestScenarioDeployThenCollisionFails(t *testing.T) {
	h := NewHarness(t)
	deployerHash := felt.ClassHashFromFelt(felt.FromUint64(8))
	targetHash := felt.ClassHashFromFelt(felt.FromUint64(9))
	deployerAddr := felt.AddressFromFelt(felt.FromUint64(1111))

	h.DeclareAndDeploy(deployerHash, deployerAddr, DeployerClass(targetHash))
	require.NoError(t, h.Registry.Set(targetHash, DeployTargetClass()))

	first := h.Invoke(deployerAddr, DeployerSelector, nil)
	Verify(t, first).Succeeds().HasInnerCalls(1)

	second := h.Invoke(deployerAddr, DeployerSelector, nil)
	Verify(t, second).Fails()
}
