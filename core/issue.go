package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// IssueParams names the certificate to issue. StudentName and CourseName
// default to the values recorded at upload time when left empty.
type IssueParams struct {
	ApplicationCertID interfaces.ApplicationCertID
	IssuerName        string
	StudentName       string
	CourseName        string
}

// IssueResult reports a confirmed issuance.
type IssueResult struct {
	ApplicationCertID interfaces.ApplicationCertID
	RecordKey         interfaces.RecordKey
	TransactionHash   interfaces.TxHash
}

// Issue anchors a pending certificate on the ledger. The record key is
// derived deterministically before submission, so an ambiguous confirmation
// can always be resolved afterwards by re-querying that key. Concurrent calls
// for the same application certificate ID are serialized; the second caller
// finds the row already issued.
func (c *RegistryCore) Issue(ctx context.Context, params IssueParams) (*IssueResult, error) {
	unlock := c.locks.lock(params.ApplicationCertID)
	defer unlock()

	row, err := c.index.FindByApplicationID(ctx, params.ApplicationCertID)
	if err != nil {
		return nil, fmt.Errorf("look up certificate %s: %w", params.ApplicationCertID, err)
	}
	if row.State == interfaces.StateIssued {
		return nil, fmt.Errorf("certificate %s: %w", params.ApplicationCertID, interfaces.ErrDuplicateKey)
	}

	studentName := params.StudentName
	if studentName == "" {
		studentName = row.StudentName
	}
	courseName := params.CourseName
	if courseName == "" {
		courseName = row.CourseName
	}
	if params.IssuerName == "" || studentName == "" || courseName == "" {
		return nil, fmt.Errorf("%w: issuer, student, and course names are required", interfaces.ErrInvalidContent)
	}

	actor := c.ledger.SignerAddress()
	if c.policy != nil && !c.policy.IsAuthorized(actor) {
		return nil, fmt.Errorf("actor %s: %w", actor, interfaces.ErrNotAuthorized)
	}
	authorized, err := c.ledger.IsAuthorized(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("check issuer authorization: %w", err)
	}
	if !authorized {
		return nil, fmt.Errorf("actor %s: %w", actor, interfaces.ErrNotAuthorized)
	}

	req := interfaces.IssuanceRequest{
		IssuerName:  params.IssuerName,
		StudentName: studentName,
		CourseName:  courseName,
		ContentID:   row.ContentID,
		Nonce:       c.newNonce(),
	}
	expectedKey, err := req.RecordKey()
	if err != nil {
		return nil, fmt.Errorf("derive record key: %w", err)
	}

	txHash, err := c.ledger.SubmitIssuance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submit issuance: %w", err)
	}
	c.log.Info("Submitted issuance transaction",
		slog.String("applicationCertID", params.ApplicationCertID.String()),
		slog.String("recordKey", expectedKey.String()),
		slog.String("txHash", txHash.String()))

	receipt, err := c.awaitReceipt(ctx, txHash)
	if err != nil {
		// Submitted but unconfirmed. The deterministic key tells us whether
		// the transaction landed anyway.
		if record, qerr := c.ledger.QueryByKey(ctx, expectedKey); qerr == nil && record != nil {
			c.finalizeIssuance(ctx, row, expectedKey, txHash)
			return &IssueResult{
				ApplicationCertID: params.ApplicationCertID,
				RecordKey:         expectedKey,
				TransactionHash:   txHash,
			}, nil
		}
		return nil, fmt.Errorf("issuance of %s: %w", params.ApplicationCertID, interfaces.ErrConfirmationAmbiguous)
	}

	if !receipt.Success {
		return nil, fmt.Errorf("issuing transaction %s reverted", txHash)
	}
	eventKey, err := issuanceEventKey(receipt)
	if err != nil {
		return nil, fmt.Errorf("issuance of %s: %w", params.ApplicationCertID, err)
	}
	if !eventKey.Equal(expectedKey) {
		c.log.Error("Issuance event key does not match derived key",
			slog.String("expected", expectedKey.String()),
			slog.String("emitted", eventKey.String()))
		return nil, fmt.Errorf("issuance of %s: emitted key mismatch: %w", params.ApplicationCertID, interfaces.ErrConfirmationAmbiguous)
	}

	c.finalizeIssuance(ctx, row, eventKey, txHash)
	c.log.Info("Certificate issued",
		slog.String("applicationCertID", params.ApplicationCertID.String()),
		slog.String("recordKey", eventKey.String()))

	return &IssueResult{
		ApplicationCertID: params.ApplicationCertID,
		RecordKey:         eventKey,
		TransactionHash:   txHash,
	}, nil
}

// AttachTransaction records an issuance the client submitted with its own
// wallet. The transaction receipt is fetched, the emitted record key is
// verified against the ledger, and the index row transitions to issued.
func (c *RegistryCore) AttachTransaction(ctx context.Context, id interfaces.ApplicationCertID, txHash interfaces.TxHash) (*IssueResult, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	row, err := c.index.FindByApplicationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up certificate %s: %w", id, err)
	}
	if row.State == interfaces.StateIssued {
		if row.TransactionHash != nil && *row.TransactionHash == txHash {
			// Idempotent re-report of the same transaction.
			return &IssueResult{ApplicationCertID: id, RecordKey: *row.RecordKey, TransactionHash: txHash}, nil
		}
		return nil, fmt.Errorf("certificate %s: %w", id, interfaces.ErrDuplicateKey)
	}

	receipt, err := c.awaitReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", txHash, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("attach transaction %s: %w", txHash, interfaces.ErrConfirmationAmbiguous)
	}
	if !receipt.Success {
		return nil, fmt.Errorf("issuing transaction %s reverted", txHash)
	}
	eventKey, err := issuanceEventKey(receipt)
	if err != nil {
		return nil, fmt.Errorf("attach transaction %s: %w", txHash, err)
	}

	record, err := c.ledger.QueryByKey(ctx, eventKey)
	if err != nil {
		return nil, fmt.Errorf("verify attached issuance %s: %w", eventKey, err)
	}
	if record.ContentID != row.ContentID {
		return nil, fmt.Errorf("%w: transaction issues a different document", interfaces.ErrInvalidContent)
	}

	c.finalizeIssuance(ctx, row, eventKey, txHash)
	c.log.Info("Attached client-submitted issuance",
		slog.String("applicationCertID", id.String()),
		slog.String("recordKey", eventKey.String()),
		slog.String("txHash", txHash.String()))

	return &IssueResult{ApplicationCertID: id, RecordKey: eventKey, TransactionHash: txHash}, nil
}

// finalizeIssuance moves an index row to the issued state. The ledger already
// holds the record, so index failures are logged but do not fail the
// operation; the row heals on the next upsert.
func (c *RegistryCore) finalizeIssuance(ctx context.Context, row *interfaces.IndexRecord, key interfaces.RecordKey, txHash interfaces.TxHash) {
	issuedAt := c.now().UTC()
	row.RecordKey = &key
	row.TransactionHash = &txHash
	row.State = interfaces.StateIssued
	row.IssuedAt = &issuedAt
	if err := c.index.Upsert(ctx, row); err != nil {
		c.log.Error("Failed to record issuance in off-chain index",
			slog.String("applicationCertID", row.ApplicationCertID.String()),
			slog.String("recordKey", key.String()),
			"err", err)
	}
}

// awaitReceipt polls for a receipt until the transaction confirms or the
// confirmation window closes. Unknown transactions surface ErrNotFound,
// everything else times out into a plain deadline error for the caller to
// classify.
func (c *RegistryCore) awaitReceipt(ctx context.Context, txHash interfaces.TxHash) (*interfaces.LedgerReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.ledger.GetReceipt(ctx, txHash)
		if err != nil && !errors.Is(err, interfaces.ErrLedgerUnavailable) {
			return nil, err
		}
		if err == nil && receipt.Confirmed {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func issuanceEventKey(receipt *interfaces.LedgerReceipt) (interfaces.RecordKey, error) {
	if len(receipt.Issuances) == 0 {
		return interfaces.RecordKey{}, fmt.Errorf("no issuance event in transaction %s: %w", receipt.TxHash, interfaces.ErrConfirmationAmbiguous)
	}
	return receipt.Issuances[0].RecordKey, nil
}
