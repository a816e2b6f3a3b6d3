package interfaces

import "context"

// IssuanceRequest carries the fields submitted to the ledger when issuing a
// certificate. The nonce is part of the deterministic record key derivation,
// so the same request always maps to the same key and duplicate submission is
// rejected by the ledger rather than creating a second record.
type IssuanceRequest struct {
	IssuerName  string
	StudentName string
	CourseName  string
	ContentID   ContentID
	Nonce       uint64
}

// RecordKey derives the deterministic ledger key for this request.
func (r IssuanceRequest) RecordKey() (RecordKey, error) {
	return ComputeRecordKey(r.IssuerName, r.StudentName, r.CourseName, r.ContentID, r.Nonce)
}

// IssuanceEvent is the decoded issuance event emitted by the ledger. The
// record key extracted from here is the only trustworthy post-hoc source for
// correlating a transaction with a record.
type IssuanceEvent struct {
	RecordKey   RecordKey
	StudentName string
	CourseName  string
	ContentID   ContentID
}

// RevocationEvent is the decoded revocation event emitted by the ledger.
type RevocationEvent struct {
	RecordKey RecordKey
}

// LedgerReceipt reports a transaction's inclusion status and decoded events.
// Confirmed=false means the transaction is not yet mined; its outcome is
// unknown, not failed.
type LedgerReceipt struct {
	TxHash    TxHash
	Confirmed bool

	// Success is meaningful only when Confirmed. A confirmed-but-failed
	// transaction mutated nothing.
	Success bool

	Issuances   []IssuanceEvent
	Revocations []RevocationEvent
}

// Ledger abstracts the append-only, authorization-gated certificate registry
// (a blockchain contract). Submission success is not confirmation: callers
// must await a receipt, and on timeout re-query by the deterministic record
// key instead of resubmitting blindly.
type Ledger interface {
	// SubmitIssuance sends an issuance transaction. The ledger enforces
	// non-empty fields, actor authorization, and record key uniqueness.
	SubmitIssuance(ctx context.Context, req IssuanceRequest) (TxHash, error)

	// SubmitRevocation sends a revocation transaction. The ledger enforces
	// issuer-or-owner semantics on the sender.
	SubmitRevocation(ctx context.Context, key RecordKey) (TxHash, error)

	// GetReceipt returns the receipt for a transaction. A pending
	// transaction yields Confirmed=false with no error; an unknown hash
	// yields ErrNotFound.
	GetReceipt(ctx context.Context, tx TxHash) (*LedgerReceipt, error)

	// QueryByKey reads the authoritative record, or ErrNotFound.
	QueryByKey(ctx context.Context, key RecordKey) (*CertificateRecord, error)

	// IsAuthorized reports whether the actor may issue, per the ledger's own
	// authorization state.
	IsAuthorized(ctx context.Context, actor ActorAddress) (bool, error)

	// Owner returns the registry owner.
	Owner(ctx context.Context) (ActorAddress, error)

	// SignerAddress returns the actor this ledger client signs transactions
	// as, or the zero address for read-only clients.
	SignerAddress() ActorAddress

	// Available checks ledger connectivity.
	Available(ctx context.Context) bool
}

// IssuerAdmin extends Ledger with the owner-only issuer management calls.
type IssuerAdmin interface {
	// AuthorizeIssuer grants issuance rights to an actor.
	AuthorizeIssuer(ctx context.Context, issuer ActorAddress) (TxHash, error)

	// RevokeIssuer removes an actor from the issuer set. Revoking the owner
	// must be rejected.
	RevokeIssuer(ctx context.Context, issuer ActorAddress) (TxHash, error)
}

// AuthorizationPolicy is the client-side view of who may issue and revoke.
// It exists to fail fast before spending a ledger transaction; the ledger's
// own enforcement remains authoritative and is always re-checked on-chain.
type AuthorizationPolicy interface {
	// IsAuthorized reports whether the actor is the owner or an authorized
	// issuer.
	IsAuthorized(actor ActorAddress) bool

	// Owner returns the registry owner, fixed at policy creation.
	Owner() ActorAddress
}
