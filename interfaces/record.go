package interfaces

// CertificateRecord is the authoritative, ledger-resident certificate state.
// Every field except Valid is immutable once issued; Valid flips to false on
// revocation and never back. Records are never deleted.
type CertificateRecord struct {
	RecordKey   RecordKey
	IssuerName  string
	StudentName string
	CourseName  string

	// ContentID points into the content store; the record never embeds the
	// document itself.
	ContentID ContentID

	// IssuedAt is seconds since epoch, set by the ledger at issuance time.
	IssuedAt int64

	// Issuer is the actor that issued the record.
	Issuer ActorAddress

	Valid bool
}

// VerificationResult is the merged outcome of a verification read: the
// authoritative ledger fields plus supplementary off-chain index fields when
// an index row exists. "Not found" and "revoked" are expected outcomes and
// are expressed as Valid=false with a reason, never as an error.
type VerificationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`

	RecordKey   string `json:"recordKey,omitempty"`
	IssuerName  string `json:"issuerName,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	ContentID   string `json:"contentId,omitempty"`
	IssuedAt    int64  `json:"issuedAt,omitempty"`
	Issuer      string `json:"issuer,omitempty"`

	// Supplementary fields from the off-chain index. Their absence is not an
	// error; the ledger fields above stand on their own.
	ApplicationCertID string `json:"applicationCertId,omitempty"`
	TransactionHash   string `json:"transactionHash,omitempty"`
	Grade             string `json:"grade,omitempty"`
	Description       string `json:"description,omitempty"`
}
