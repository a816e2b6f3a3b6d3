// Package api defines the request and response types shared by the
// certificate registry HTTP server and its clients.
package api

import (
	"github.com/certchain/certificate-registry-backend/interfaces"
)

// UploadMetadata is the descriptive metadata submitted alongside a
// certificate document. Student and course names are mandatory; grade and
// description are free-form supplements stored only off-chain.
type UploadMetadata struct {
	StudentName string `json:"studentName"`
	CourseName  string `json:"courseName"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// UploadResponse reports a stored document awaiting issuance.
type UploadResponse struct {
	ApplicationCertID string `json:"applicationCertId"`
	ContentID         string `json:"contentId"`
	State             string `json:"state"`
}

// IssueRequest asks the server to anchor a pending certificate on the
// ledger. StudentName and CourseName default to the values given at upload.
type IssueRequest struct {
	IssuerName  string `json:"issuerName"`
	StudentName string `json:"studentName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
}

// AttachRequest reports an issuing transaction the client submitted with its
// own wallet.
type AttachRequest struct {
	TransactionHash string `json:"transactionHash"`
}

// IssueResponse reports a confirmed issuance.
type IssueResponse struct {
	ApplicationCertID string `json:"applicationCertId"`
	RecordKey         string `json:"recordKey"`
	TransactionHash   string `json:"transactionHash"`
}

// RevokeResponse reports a confirmed revocation. TransactionHash is empty
// when the record was already revoked and no transaction was needed.
type RevokeResponse struct {
	RecordKey       string `json:"recordKey"`
	TransactionHash string `json:"transactionHash,omitempty"`
	Revoked         bool   `json:"revoked"`
}

// HealthResponse reports per-component connectivity.
type HealthResponse struct {
	Healthy bool `json:"healthy"`
	Ledger  bool `json:"ledger"`
	Index   bool `json:"index"`
	Storage bool `json:"storage"`
}

// ErrorResponse is the JSON error body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CertificateProvider is the client-side view of the registry service. The
// HTTP client implements it; tests substitute a mock.
type CertificateProvider interface {
	// Upload stores a certificate document and returns its pending
	// application certificate ID.
	Upload(document []byte, meta UploadMetadata) (*UploadResponse, error)

	// Issue anchors a pending certificate on the ledger.
	Issue(id string, req IssueRequest) (*IssueResponse, error)

	// AttachTransaction reports a client-submitted issuing transaction.
	AttachTransaction(id string, txHash string) (*IssueResponse, error)

	// VerifyByKey verifies a certificate by its ledger record key.
	VerifyByKey(recordKey string) (*interfaces.VerificationResult, error)

	// VerifyByApplicationID verifies a certificate by application ID.
	VerifyByApplicationID(id string) (*interfaces.VerificationResult, error)

	// VerifyByTransaction verifies the certificate issued by a transaction.
	VerifyByTransaction(txHash string) (*interfaces.VerificationResult, error)

	// Revoke permanently invalidates a certificate record.
	Revoke(recordKey string) (*RevokeResponse, error)

	// Health probes the service's components.
	Health() (*HealthResponse, error)
}
