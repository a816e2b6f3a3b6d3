package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// Revoke permanently invalidates a ledger record. The owner may revoke any
// record, an issuer only records they issued; the ledger enforces this on its
// own and the advisory policy only fails fast. Revoking an already revoked
// record is a no-op.
func (c *RegistryCore) Revoke(ctx context.Context, key interfaces.RecordKey) (interfaces.TxHash, error) {
	record, err := c.ledger.QueryByKey(ctx, key)
	if err != nil {
		return interfaces.TxHash{}, fmt.Errorf("query record %s: %w", key, err)
	}
	if !record.Valid {
		c.log.Info("Record already revoked", slog.String("recordKey", key.String()))
		return interfaces.TxHash{}, nil
	}

	actor := c.ledger.SignerAddress()
	if c.policy != nil {
		ownerCall := actor == c.policy.Owner()
		issuerCall := c.policy.IsAuthorized(actor) && record.Issuer == actor
		if !ownerCall && !issuerCall {
			return interfaces.TxHash{}, fmt.Errorf("actor %s may not revoke %s: %w", actor, key, interfaces.ErrNotAuthorized)
		}
	}

	txHash, err := c.ledger.SubmitRevocation(ctx, key)
	if err != nil {
		return interfaces.TxHash{}, fmt.Errorf("submit revocation: %w", err)
	}
	c.log.Info("Submitted revocation transaction",
		slog.String("recordKey", key.String()),
		slog.String("txHash", txHash.String()))

	receipt, err := c.awaitReceipt(ctx, txHash)
	if err != nil {
		// Unknown outcome. The record itself tells us whether the revocation
		// landed.
		if record, qerr := c.ledger.QueryByKey(ctx, key); qerr == nil && !record.Valid {
			c.propagateRevocation(ctx, key)
			return txHash, nil
		}
		return interfaces.TxHash{}, fmt.Errorf("revocation of %s: %w", key, interfaces.ErrConfirmationAmbiguous)
	}
	if !receipt.Success {
		return interfaces.TxHash{}, fmt.Errorf("revoking transaction %s reverted", txHash)
	}

	c.propagateRevocation(ctx, key)
	c.log.Info("Certificate revoked", slog.String("recordKey", key.String()))
	return txHash, nil
}

// propagateRevocation writes the revoked cache hint to the index row, if one
// exists. Failures are logged only; read paths re-check the ledger anyway.
func (c *RegistryCore) propagateRevocation(ctx context.Context, key interfaces.RecordKey) {
	row, err := c.index.FindByRecordKey(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			c.log.Warn("Could not load index row for revocation hint",
				slog.String("recordKey", key.String()), "err", err)
		}
		return
	}
	row.Revoked = true
	if err := c.index.Upsert(ctx, row); err != nil {
		c.log.Warn("Could not propagate revocation hint to index",
			slog.String("recordKey", key.String()), "err", err)
	}
}
