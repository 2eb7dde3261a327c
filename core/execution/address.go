package execution

import (
	"math/big"

	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"golang.org/x/crypto/sha3"
)

// ComputeDeployAddress implements the deploy-address formula supplemented
// from the original implementation's address computation
// (`new_addr = H(salt, class_hash, calldata, deployer_addr)`, spec.md §4.5
// "deploy"). The digest itself stands in for the real Pedersen/Poseidon
// hash named in spec.md §1's non-goals: only the formula's shape (which
// fields feed the address, and that it is deterministic) is in scope here.
func ComputeDeployAddress(salt felt.Felt, classHash felt.ClassHash, calldata []felt.Felt, deployer felt.Address) felt.Address {
	h := sha3.New256()
	saltBytes := salt.Bytes()
	h.Write(saltBytes[:])
	classHashBytes := classHash.Felt().Bytes()
	h.Write(classHashBytes[:])
	for _, arg := range calldata {
		argBytes := arg.Bytes()
		h.Write(argBytes[:])
	}
	deployerBytes := deployer.Felt().Bytes()
	h.Write(deployerBytes[:])

	digest := h.Sum(nil)
	return felt.AddressFromFelt(felt.FromBigInt(new(big.Int).SetBytes(digest)))
}
