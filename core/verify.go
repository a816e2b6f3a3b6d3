package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// Verification reason strings. A verification read never errors for a
// missing or revoked certificate; those are expected outcomes.
const (
	reasonNotFound     = "no certificate found for this key"
	reasonRevoked      = "certificate has been revoked"
	reasonNotIssued    = "certificate not yet issued"
	reasonUnknownID    = "unknown certificate id"
	reasonUnknownTx    = "unknown transaction"
	reasonTxPending    = "transaction not yet confirmed"
	reasonTxReverted   = "transaction reverted"
	reasonNoIssueEvent = "no issuance event in transaction"
)

// VerifyByKey reads the authoritative ledger record and merges supplementary
// index fields when a mirror row exists. The ledger decides validity; the
// index only contributes metadata it alone carries.
func (c *RegistryCore) VerifyByKey(ctx context.Context, key interfaces.RecordKey) (*interfaces.VerificationResult, error) {
	record, err := c.ledger.QueryByKey(ctx, key)
	if errors.Is(err, interfaces.ErrNotFound) {
		// An index row claiming this key means the mirror ran ahead of the
		// ledger. The certificate is still not verifiable.
		if _, ierr := c.index.FindByRecordKey(ctx, key); ierr == nil {
			c.log.Warn("Off-chain index references a record key missing from the ledger",
				slog.String("recordKey", key.String()))
		}
		return &interfaces.VerificationResult{Valid: false, Reason: reasonNotFound}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record %s: %w", key, err)
	}

	result := &interfaces.VerificationResult{
		Valid:       record.Valid,
		RecordKey:   record.RecordKey.String(),
		IssuerName:  record.IssuerName,
		StudentName: record.StudentName,
		CourseName:  record.CourseName,
		ContentID:   record.ContentID.String(),
		IssuedAt:    record.IssuedAt,
		Issuer:      record.Issuer.String(),
	}
	if !record.Valid {
		result.Reason = reasonRevoked
	}

	row, err := c.index.FindByRecordKey(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			c.log.Warn("Off-chain index lookup failed during verification",
				slog.String("recordKey", key.String()), "err", err)
		}
		return result, nil
	}

	result.ApplicationCertID = row.ApplicationCertID.String()
	if row.TransactionHash != nil {
		result.TransactionHash = row.TransactionHash.String()
	}
	result.Grade = row.Grade
	result.Description = row.Description

	if row.StudentName != record.StudentName || row.CourseName != record.CourseName {
		c.log.Warn("Off-chain index disagrees with ledger record",
			slog.String("recordKey", key.String()),
			slog.String("ledgerStudent", record.StudentName),
			slog.String("indexStudent", row.StudentName))
	}
	return result, nil
}

// VerifyByApplicationID resolves an application certificate ID through the
// index and delegates to VerifyByKey once issued.
func (c *RegistryCore) VerifyByApplicationID(ctx context.Context, id interfaces.ApplicationCertID) (*interfaces.VerificationResult, error) {
	row, err := c.index.FindByApplicationID(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return &interfaces.VerificationResult{Valid: false, Reason: reasonUnknownID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up certificate %s: %w", id, err)
	}

	if row.State != interfaces.StateIssued || row.RecordKey == nil {
		return &interfaces.VerificationResult{
			Valid:             false,
			Reason:            reasonNotIssued,
			ApplicationCertID: row.ApplicationCertID.String(),
			StudentName:       row.StudentName,
			CourseName:        row.CourseName,
			ContentID:         row.ContentID.String(),
			Grade:             row.Grade,
			Description:       row.Description,
		}, nil
	}

	result, err := c.VerifyByKey(ctx, *row.RecordKey)
	if err != nil {
		return nil, err
	}
	if result.ApplicationCertID == "" {
		result.ApplicationCertID = row.ApplicationCertID.String()
	}
	return result, nil
}

// VerifyByTransaction correlates a transaction with its issuance event and
// verifies the emitted record key. Only the event is trusted for the key; the
// caller's claim about what the transaction did is ignored.
func (c *RegistryCore) VerifyByTransaction(ctx context.Context, txHash interfaces.TxHash) (*interfaces.VerificationResult, error) {
	receipt, err := c.ledger.GetReceipt(ctx, txHash)
	if errors.Is(err, interfaces.ErrNotFound) {
		return &interfaces.VerificationResult{Valid: false, Reason: reasonUnknownTx}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch receipt %s: %w", txHash, err)
	}
	if !receipt.Confirmed {
		return &interfaces.VerificationResult{Valid: false, Reason: reasonTxPending}, nil
	}
	if !receipt.Success {
		return &interfaces.VerificationResult{Valid: false, Reason: reasonTxReverted}, nil
	}
	if len(receipt.Issuances) == 0 {
		return &interfaces.VerificationResult{Valid: false, Reason: reasonNoIssueEvent}, nil
	}

	result, err := c.VerifyByKey(ctx, receipt.Issuances[0].RecordKey)
	if err != nil {
		return nil, err
	}
	if result.TransactionHash == "" {
		result.TransactionHash = txHash.String()
	}
	return result, nil
}
