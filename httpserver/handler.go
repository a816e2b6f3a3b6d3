package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/certchain/certificate-registry-backend/api"
	"github.com/certchain/certificate-registry-backend/core"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/certchain/certificate-registry-backend/metrics"
)

// maxUploadBytes bounds the multipart form, slightly above the document cap
// so the size violation surfaces as a validation error, not a parse failure.
const maxUploadBytes = 11 << 20

// Handler processes HTTP requests for the certificate registry service.
type Handler struct {
	core *core.RegistryCore
	log  *slog.Logger
}

// NewHandler creates a request handler around a RegistryCore.
func NewHandler(registryCore *core.RegistryCore, log *slog.Logger) *Handler {
	return &Handler{
		core: registryCore,
		log:  log,
	}
}

// HandleUpload processes a certificate document upload.
//
// URL format: POST /api/certificates
// The request is a multipart form: a "certificate" file plus studentName,
// courseName, and optional grade and description fields.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("certificate")
	if err != nil {
		http.Error(w, "Missing certificate file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read uploaded file", "err", err)
		http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = http.DetectContentType(document)
	}

	meta := core.UploadMetadata{
		StudentName: r.FormValue("studentName"),
		CourseName:  r.FormValue("courseName"),
		Grade:       r.FormValue("grade"),
		Description: r.FormValue("description"),
	}

	record, err := h.core.UploadContent(r.Context(), document, mediaType, meta)
	if err != nil {
		h.writeError(w, "upload", err)
		return
	}
	metrics.UploadsTotal.Inc()
	metrics.UploadSizeBytes.Observe(float64(len(document)))

	h.writeJSON(w, http.StatusOK, api.UploadResponse{
		ApplicationCertID: record.ApplicationCertID.String(),
		ContentID:         record.ContentID.String(),
		State:             string(record.State),
	})
}

// HandleIssue anchors a pending certificate on the ledger.
//
// URL format: POST /api/certificates/{id}/issue
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing certificate id in URL", http.StatusBadRequest)
		return
	}

	var req api.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.core.Issue(r.Context(), core.IssueParams{
		ApplicationCertID: interfaces.ApplicationCertID(id),
		IssuerName:        req.IssuerName,
		StudentName:       req.StudentName,
		CourseName:        req.CourseName,
	})
	if err != nil {
		h.writeError(w, "issue", err)
		return
	}
	metrics.IssuancesTotal.Inc()

	h.writeJSON(w, http.StatusOK, issueResponse(result))
}

// HandleAttachTransaction records an issuance the client submitted with its
// own wallet.
//
// URL format: PUT /api/certificates/{id}/issue
func (h *Handler) HandleAttachTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing certificate id in URL", http.StatusBadRequest)
		return
	}

	var req api.AttachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	txHash, err := interfaces.NewTxHashFromHex(req.TransactionHash)
	if err != nil {
		http.Error(w, "Invalid transaction hash", http.StatusBadRequest)
		return
	}

	result, err := h.core.AttachTransaction(r.Context(), interfaces.ApplicationCertID(id), txHash)
	if err != nil {
		h.writeError(w, "attach transaction", err)
		return
	}
	metrics.IssuancesTotal.Inc()

	h.writeJSON(w, http.StatusOK, issueResponse(result))
}

// HandleContent serves the stored certificate document.
//
// URL format: GET /api/certificates/{id}/content
func (h *Handler) HandleContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing certificate id in URL", http.StatusBadRequest)
		return
	}

	document, contentID, err := h.core.ContentByApplicationID(r.Context(), interfaces.ApplicationCertID(id))
	if err != nil {
		h.writeError(w, "fetch content", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Content-Id", contentID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}

// HandleVerifyByKey verifies a certificate by its ledger record key.
// A missing or revoked certificate is a 200 with valid=false; only
// infrastructure failures produce error statuses.
//
// URL format: GET /api/verify/key/{recordKey}
func (h *Handler) HandleVerifyByKey(w http.ResponseWriter, r *http.Request) {
	key, err := interfaces.NewRecordKeyFromHex(chi.URLParam(r, "recordKey"))
	if err != nil {
		http.Error(w, "Invalid record key format", http.StatusBadRequest)
		return
	}

	result, err := h.core.VerifyByKey(r.Context(), key)
	if err != nil {
		h.writeError(w, "verify by key", err)
		return
	}
	metrics.VerificationsTotal.Inc()
	h.writeJSON(w, http.StatusOK, result)
}

// HandleVerifyByApplicationID verifies a certificate by application ID.
//
// URL format: GET /api/verify/id/{id}
func (h *Handler) HandleVerifyByApplicationID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing certificate id in URL", http.StatusBadRequest)
		return
	}

	result, err := h.core.VerifyByApplicationID(r.Context(), interfaces.ApplicationCertID(id))
	if err != nil {
		h.writeError(w, "verify by id", err)
		return
	}
	metrics.VerificationsTotal.Inc()
	h.writeJSON(w, http.StatusOK, result)
}

// HandleVerifyByTransaction verifies the certificate issued by a transaction.
//
// URL format: GET /api/verify/tx/{txHash}
func (h *Handler) HandleVerifyByTransaction(w http.ResponseWriter, r *http.Request) {
	txHash, err := interfaces.NewTxHashFromHex(chi.URLParam(r, "txHash"))
	if err != nil {
		http.Error(w, "Invalid transaction hash format", http.StatusBadRequest)
		return
	}

	result, err := h.core.VerifyByTransaction(r.Context(), txHash)
	if err != nil {
		h.writeError(w, "verify by transaction", err)
		return
	}
	metrics.VerificationsTotal.Inc()
	h.writeJSON(w, http.StatusOK, result)
}

// HandleRevoke permanently invalidates a certificate record.
//
// URL format: POST /api/revoke/{recordKey}
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	key, err := interfaces.NewRecordKeyFromHex(chi.URLParam(r, "recordKey"))
	if err != nil {
		http.Error(w, "Invalid record key format", http.StatusBadRequest)
		return
	}

	txHash, err := h.core.Revoke(r.Context(), key)
	if err != nil {
		h.writeError(w, "revoke", err)
		return
	}
	metrics.RevocationsTotal.Inc()

	resp := api.RevokeResponse{RecordKey: key.String(), Revoked: true}
	if !txHash.IsZero() {
		resp.TransactionHash = txHash.String()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleHealth probes ledger, index, and content store connectivity. A
// degraded service answers 503 with the same per-component body.
//
// URL format: GET /api/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := h.core.Health(r.Context())

	status := http.StatusOK
	if !health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, api.HealthResponse{
		Healthy: health.Healthy(),
		Ledger:  health.Ledger,
		Index:   health.Index,
		Storage: health.Store,
	})
}

func issueResponse(result *core.IssueResult) api.IssueResponse {
	return api.IssueResponse{
		ApplicationCertID: result.ApplicationCertID.String(),
		RecordKey:         result.RecordKey.String(),
		TransactionHash:   result.TransactionHash.String(),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Ambiguous ledger
// confirmation maps to 504 so clients can tell "unknown outcome, re-query by
// key" apart from definite failure.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, interfaces.ErrInvalidContent),
		errors.Is(err, interfaces.ErrCannotRevokeOwner):
		status = http.StatusBadRequest
	case errors.Is(err, interfaces.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, interfaces.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, interfaces.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, interfaces.ErrConfirmationAmbiguous):
		status = http.StatusGatewayTimeout
	case errors.Is(err, interfaces.ErrLedgerUnavailable),
		errors.Is(err, interfaces.ErrStorageUnavailable),
		errors.Is(err, interfaces.ErrIndexUnavailable),
		errors.Is(err, interfaces.ErrIDGenerationExhausted):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", slog.String("op", op), "err", err)
	} else {
		h.log.Info("Request rejected", slog.String("op", op), "err", err)
	}
	h.writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}
