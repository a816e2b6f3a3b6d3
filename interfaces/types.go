package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// RecordKey is the 32-byte deterministic identifier binding a certificate's
// semantic fields to exactly one ledger entry. It is the primary key across
// the ledger, the off-chain index, and all verification paths.
type RecordKey [32]byte

// NewRecordKeyFromBytes creates a record key from a raw 32-byte slice.
func NewRecordKeyFromBytes(source []byte) (RecordKey, error) {
	if len(source) != 32 {
		return RecordKey{}, errors.New("invalid record key length: must be 32 bytes")
	}

	var key RecordKey
	copy(key[:], source)
	return key, nil
}

// NewRecordKeyFromHex parses a record key from its canonical hex encoding.
// The 0x prefix is optional and casing is normalized, so keys received from
// any boundary (URL, JSON, database) resolve to the same value.
func NewRecordKeyFromHex(source string) (RecordKey, error) {
	clean := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(source), "0x"))
	if len(clean) != 64 {
		return RecordKey{}, errors.New("invalid record key length: hex string must be 64 characters")
	}

	keyBytes, err := hex.DecodeString(clean)
	if err != nil {
		return RecordKey{}, fmt.Errorf("invalid record key hex: %w", err)
	}

	return NewRecordKeyFromBytes(keyBytes)
}

// String returns the canonical encoding: 0x-prefixed lowercase hex.
func (k RecordKey) String() string {
	return "0x" + hex.EncodeToString(k[:])
}

// Bytes returns the raw 32-byte key.
func (k RecordKey) Bytes() []byte {
	return k[:]
}

// Equal compares two record keys.
func (k RecordKey) Equal(other RecordKey) bool {
	return k == other
}

// IsZero reports whether the key is unset.
func (k RecordKey) IsZero() bool {
	return k == RecordKey{}
}

// TxHash is a 32-byte ledger transaction hash.
type TxHash [32]byte

// NewTxHashFromHex parses a transaction hash, normalizing prefix and casing
// the same way record keys are normalized.
func NewTxHashFromHex(source string) (TxHash, error) {
	clean := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(source), "0x"))
	if len(clean) != 64 {
		return TxHash{}, errors.New("invalid transaction hash length: hex string must be 64 characters")
	}

	hashBytes, err := hex.DecodeString(clean)
	if err != nil {
		return TxHash{}, fmt.Errorf("invalid transaction hash hex: %w", err)
	}

	var hash TxHash
	copy(hash[:], hashBytes)
	return hash, nil
}

// String returns the 0x-prefixed lowercase hex encoding.
func (h TxHash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is unset.
func (h TxHash) IsZero() bool {
	return h == TxHash{}
}

// ActorAddress identifies an actor (owner, issuer, or anyone else) on the
// ledger. It is a 20-byte account address.
type ActorAddress [20]byte

// NewActorAddressFromBytes creates an actor address from a raw 20-byte slice.
func NewActorAddressFromBytes(source []byte) (ActorAddress, error) {
	if len(source) != 20 {
		return ActorAddress{}, errors.New("invalid actor address length: must be 20 bytes")
	}

	var addr ActorAddress
	copy(addr[:], source)
	return addr, nil
}

// NewActorAddressFromHex parses an actor address from hex, with optional 0x
// prefix and any casing.
func NewActorAddressFromHex(source string) (ActorAddress, error) {
	clean := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(source), "0x"))
	if len(clean) != 40 {
		return ActorAddress{}, errors.New("invalid actor address length: hex string must be 40 characters")
	}

	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return ActorAddress{}, fmt.Errorf("invalid actor address hex: %w", err)
	}

	return NewActorAddressFromBytes(addrBytes)
}

// String returns the 0x-prefixed lowercase hex encoding.
func (a ActorAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns the raw 20-byte address.
func (a ActorAddress) Bytes() []byte {
	return a[:]
}

// IsZero reports whether the address is unset.
func (a ActorAddress) IsZero() bool {
	return a == ActorAddress{}
}

// ContentID is an opaque content identifier returned by a content store
// (an IPFS-style CID). It is a pointer into the store, never the content
// itself; a ledger record references content by this ID only.
type ContentID string

// String returns the raw identifier.
func (id ContentID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ContentID) IsZero() bool {
	return id == ""
}

// ApplicationCertID is the human-facing certificate identifier generated at
// upload time, before any ledger transaction exists. It is distinct from the
// record key and remains the lookup handle for the off-chain index.
type ApplicationCertID string

// String returns the raw identifier.
func (id ApplicationCertID) String() string {
	return string(id)
}
