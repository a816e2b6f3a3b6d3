package interfaces

import (
	"context"
	"time"
)

// LifecycleState tracks an index row's issuance lifecycle. It concerns
// issuance only; certificate validity is always re-read from the ledger.
type LifecycleState string

const (
	// StatePending means content is stored but no ledger record is confirmed.
	StatePending LifecycleState = "pending"

	// StateIssued means the ledger confirmed the record. A row must never
	// claim this state without a confirmed record key and a mined
	// transaction hash.
	StateIssued LifecycleState = "issued"
)

// IndexRecord is the off-chain mirror row correlating an application-facing
// certificate ID with the ledger record and its transaction. It also carries
// metadata the ledger does not store.
type IndexRecord struct {
	ApplicationCertID ApplicationCertID

	// RecordKey is the join key to the ledger record. Nil until issuance is
	// confirmed.
	RecordKey *RecordKey

	// TransactionHash is set once the issuing transaction is mined.
	TransactionHash *TxHash

	State LifecycleState

	StudentName string
	CourseName  string
	Grade       string
	Description string
	ContentID   ContentID

	// Revoked is a cache hint propagated after a successful revocation.
	// Read paths must not trust it; the ledger's Valid bit is ground truth.
	Revoked bool

	CreatedAt time.Time
	IssuedAt  *time.Time
}

// OffChainIndex is the secondary, eventually-consistent mirror used for fast
// lookup by application certificate ID and for transaction correlation.
// Writes are best-effort and idempotent; they are never transactional with
// ledger writes.
type OffChainIndex interface {
	// Upsert inserts or replaces a row keyed by application certificate ID.
	Upsert(ctx context.Context, record *IndexRecord) error

	// FindByApplicationID returns the row for an application certificate ID,
	// or ErrNotFound.
	FindByApplicationID(ctx context.Context, id ApplicationCertID) (*IndexRecord, error)

	// FindByRecordKey returns the row referencing a ledger record key, or
	// ErrNotFound.
	FindByRecordKey(ctx context.Context, key RecordKey) (*IndexRecord, error)

	// Available checks whether the index is reachable.
	Available(ctx context.Context) bool
}
