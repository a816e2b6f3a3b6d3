package interfaces

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// recordKeyArguments is the ABI tuple the record key commits to. It must
// match the encoding used by the ledger contract exactly, or independently
// recomputed keys will not line up with emitted events.
var recordKeyArguments abi.Arguments

func init() {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(fmt.Sprintf("abi string type: %v", err))
	}
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(fmt.Sprintf("abi uint256 type: %v", err))
	}

	recordKeyArguments = abi.Arguments{
		{Name: "issuerName", Type: stringType},
		{Name: "studentName", Type: stringType},
		{Name: "courseName", Type: stringType},
		{Name: "contentId", Type: stringType},
		{Name: "nonce", Type: uint256Type},
	}
}

// ComputeRecordKey derives the deterministic record key for a certificate:
// keccak256 over the ABI encoding of {issuerName, studentName, courseName,
// contentId, nonce}. Any verifier holding the same five inputs recomputes the
// same key; the nonce is the only input that varies between otherwise
// identical certificates.
func ComputeRecordKey(issuerName, studentName, courseName string, contentID ContentID, nonce uint64) (RecordKey, error) {
	packed, err := recordKeyArguments.Pack(
		issuerName,
		studentName,
		courseName,
		string(contentID),
		new(big.Int).SetUint64(nonce),
	)
	if err != nil {
		return RecordKey{}, fmt.Errorf("failed to encode record key fields: %w", err)
	}

	return RecordKey(crypto.Keccak256Hash(packed)), nil
}
