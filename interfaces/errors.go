package interfaces

import "errors"

var (
	// ErrInvalidContent is returned when uploaded content fails validation
	// (wrong media type, oversized, or empty) before any external call.
	ErrInvalidContent = errors.New("invalid content")

	// ErrStorageUnavailable is returned when the content store is not
	// accessible. No partial state is left behind when this is returned.
	ErrStorageUnavailable = errors.New("content store unavailable")

	// ErrNotAuthorized is returned when an actor attempts an operation it is
	// not permitted to perform (issuing, revoking, or managing issuers).
	ErrNotAuthorized = errors.New("actor not authorized")

	// ErrDuplicateKey is returned when issuance is attempted with a record
	// key that already exists on the ledger. The existing record is never
	// overwritten.
	ErrDuplicateKey = errors.New("record key already issued")

	// ErrConfirmationAmbiguous is returned when a submitted transaction's
	// outcome is unknown: the confirmation wait timed out, or the ledger
	// confirmed but the issuance event could not be extracted. Callers must
	// re-query by the deterministic record key rather than retry blindly.
	ErrConfirmationAmbiguous = errors.New("ledger confirmation ambiguous")

	// ErrNotFound is returned when a record, index row, or content blob does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrIDGenerationExhausted is returned when application certificate ID
	// generation keeps colliding with existing records after bounded retries.
	ErrIDGenerationExhausted = errors.New("application certificate id generation exhausted")

	// ErrCannotRevokeOwner is returned when the registry owner attempts to
	// remove itself from the issuer set.
	ErrCannotRevokeOwner = errors.New("cannot revoke registry owner")

	// ErrLedgerUnavailable is returned when the ledger cannot be reached.
	// Unlike ErrConfirmationAmbiguous this means the operation definitely
	// did not happen.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrIndexUnavailable is returned when the off-chain index cannot be
	// reached. Verification paths treat the index as supplementary and do
	// not surface this for ledger-sufficient reads.
	ErrIndexUnavailable = errors.New("off-chain index unavailable")
)
