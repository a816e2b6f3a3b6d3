package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/certchain/certificate-registry-backend/bindings/certverifier"
	"github.com/certchain/certificate-registry-backend/interfaces"
)

// ErrNoTransactOpts is returned when a transaction is attempted without first
// setting transaction options.
var ErrNoTransactOpts = errors.New("no authorized transactor available")

// LedgerClient implements interfaces.Ledger against a CertificateVerifier
// contract deployed on a blockchain.
type LedgerClient struct {
	contract *certverifier.CertificateVerifier
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
	log      *slog.Logger
}

// NewLedgerClient creates a client for the CertificateVerifier contract at
// the specified address. It requires a ContractBackend for reads and a
// DeployBackend for receipt retrieval.
func NewLedgerClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address, log *slog.Logger) (*LedgerClient, error) {
	contract, err := certverifier.NewCertificateVerifier(address, client)
	if err != nil {
		return nil, err
	}

	return &LedgerClient{
		contract: contract,
		client:   client,
		backend:  backend,
		address:  address,
		log:      log,
	}, nil
}

// SetTransactOpts sets the transaction options required for state-mutating
// calls. Must be called before SubmitIssuance, SubmitRevocation, or issuer
// management.
func (c *LedgerClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// SignerAddress returns the actor this client signs transactions as, or the
// zero address for a read-only client.
func (c *LedgerClient) SignerAddress() interfaces.ActorAddress {
	if c.auth == nil {
		return interfaces.ActorAddress{}
	}
	return interfaces.ActorAddress(c.auth.From)
}

func (c *LedgerClient) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if c.auth == nil {
		return nil, ErrNoTransactOpts
	}

	opts := *c.auth
	opts.Context = ctx
	return &opts, nil
}

// SubmitIssuance sends an issuance transaction. Submission success is not
// confirmation; callers poll GetReceipt for the outcome. Reverts detected
// during gas estimation are mapped onto the shared error taxonomy.
func (c *LedgerClient) SubmitIssuance(ctx context.Context, req interfaces.IssuanceRequest) (interfaces.TxHash, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return interfaces.TxHash{}, err
	}

	tx, err := c.contract.IssueCertificate(opts,
		req.IssuerName, req.StudentName, req.CourseName,
		string(req.ContentID), new(big.Int).SetUint64(req.Nonce))
	if err != nil {
		return interfaces.TxHash{}, mapContractError("issuance submission", err)
	}

	c.log.Debug("Submitted issuance transaction",
		slog.String("tx", tx.Hash().Hex()),
		slog.String("student", req.StudentName),
		slog.String("course", req.CourseName))

	return interfaces.TxHash(tx.Hash()), nil
}

// SubmitRevocation sends a revocation transaction for the given record key.
func (c *LedgerClient) SubmitRevocation(ctx context.Context, key interfaces.RecordKey) (interfaces.TxHash, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return interfaces.TxHash{}, err
	}

	tx, err := c.contract.RevokeCertificate(opts, key)
	if err != nil {
		return interfaces.TxHash{}, mapContractError("revocation submission", err)
	}

	c.log.Debug("Submitted revocation transaction",
		slog.String("tx", tx.Hash().Hex()),
		slog.String("recordKey", key.String()))

	return interfaces.TxHash(tx.Hash()), nil
}

// GetReceipt retrieves a transaction's receipt and decodes the contract
// events it carries. A not-yet-mined transaction yields Confirmed=false with
// no error.
func (c *LedgerClient) GetReceipt(ctx context.Context, tx interfaces.TxHash) (*interfaces.LedgerReceipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, common.Hash(tx))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &interfaces.LedgerReceipt{TxHash: tx, Confirmed: false}, nil
		}
		return nil, fmt.Errorf("%w: receipt lookup: %v", interfaces.ErrLedgerUnavailable, err)
	}

	result := &interfaces.LedgerReceipt{
		TxHash:    tx,
		Confirmed: true,
		Success:   receipt.Status == types.ReceiptStatusSuccessful,
	}

	for _, l := range receipt.Logs {
		if issued, err := c.contract.ParseCertificateIssued(*l); err == nil {
			result.Issuances = append(result.Issuances, interfaces.IssuanceEvent{
				RecordKey:   interfaces.RecordKey(issued.CertificateId),
				StudentName: issued.StudentName,
				CourseName:  issued.CourseName,
				ContentID:   interfaces.ContentID(issued.ContentId),
			})
			continue
		}
		if revoked, err := c.contract.ParseCertificateRevoked(*l); err == nil {
			result.Revocations = append(result.Revocations, interfaces.RevocationEvent{
				RecordKey: interfaces.RecordKey(revoked.CertificateId),
			})
		}
	}

	return result, nil
}

// QueryByKey reads the authoritative certificate record from the contract.
// Returns ErrNotFound when no record exists for the key.
func (c *LedgerClient) QueryByKey(ctx context.Context, key interfaces.RecordKey) (*interfaces.CertificateRecord, error) {
	opts := &bind.CallOpts{Context: ctx}

	issuerName, studentName, courseName, contentID, issuedAt, valid, issuer, err :=
		c.contract.CertificateVerifierCaller.GetCertificateDetails(opts, key)
	if err != nil {
		return nil, fmt.Errorf("%w: certificate query: %v", interfaces.ErrLedgerUnavailable, err)
	}

	// A never-issued key decodes to the zero record. IssuedAt is set by the
	// contract on every issuance, so zero means no record.
	if issuedAt == nil || issuedAt.Sign() == 0 {
		return nil, interfaces.ErrNotFound
	}

	return &interfaces.CertificateRecord{
		RecordKey:   key,
		IssuerName:  issuerName,
		StudentName: studentName,
		CourseName:  courseName,
		ContentID:   interfaces.ContentID(contentID),
		IssuedAt:    issuedAt.Int64(),
		Issuer:      interfaces.ActorAddress(issuer),
		Valid:       valid,
	}, nil
}

// IsAuthorized reports whether the actor may issue certificates, per the
// contract's own authorization mapping. The owner is auto-authorized at
// contract deployment.
func (c *LedgerClient) IsAuthorized(ctx context.Context, actor interfaces.ActorAddress) (bool, error) {
	opts := &bind.CallOpts{Context: ctx}

	authorized, err := c.contract.CertificateVerifierCaller.AuthorizedIssuers(opts, common.Address(actor))
	if err != nil {
		return false, fmt.Errorf("%w: authorization query: %v", interfaces.ErrLedgerUnavailable, err)
	}
	return authorized, nil
}

// Owner returns the registry owner fixed at contract deployment.
func (c *LedgerClient) Owner(ctx context.Context) (interfaces.ActorAddress, error) {
	opts := &bind.CallOpts{Context: ctx}

	owner, err := c.contract.CertificateVerifierCaller.Owner(opts)
	if err != nil {
		return interfaces.ActorAddress{}, fmt.Errorf("%w: owner query: %v", interfaces.ErrLedgerUnavailable, err)
	}
	return interfaces.ActorAddress(owner), nil
}

// AuthorizeIssuer grants issuance rights to an actor. Owner-only; the
// contract reverts for anyone else.
func (c *LedgerClient) AuthorizeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return interfaces.TxHash{}, err
	}

	tx, err := c.contract.AuthorizeIssuer(opts, common.Address(issuer))
	if err != nil {
		return interfaces.TxHash{}, mapContractError("issuer authorization", err)
	}
	return interfaces.TxHash(tx.Hash()), nil
}

// RevokeIssuer removes an actor from the issuer set. The contract rejects
// revoking the owner.
func (c *LedgerClient) RevokeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return interfaces.TxHash{}, err
	}

	tx, err := c.contract.RevokeIssuer(opts, common.Address(issuer))
	if err != nil {
		return interfaces.TxHash{}, mapContractError("issuer revocation", err)
	}
	return interfaces.TxHash(tx.Hash()), nil
}

// Available checks ledger connectivity with a cheap contract read.
func (c *LedgerClient) Available(ctx context.Context) bool {
	opts := &bind.CallOpts{Context: ctx}
	_, err := c.contract.CertificateVerifierCaller.Owner(opts)
	if err != nil {
		c.log.Debug("Ledger unavailable", "err", err)
		return false
	}
	return true
}

// mapContractError classifies revert reasons surfaced during gas estimation
// onto the shared error taxonomy. Revert strings come from the contract's
// require messages.
func mapContractError(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "already exists"):
		return fmt.Errorf("%s: %w", op, interfaces.ErrDuplicateKey)
	case strings.Contains(msg, "Not authorized"):
		return fmt.Errorf("%s: %w", op, interfaces.ErrNotAuthorized)
	case strings.Contains(msg, "cannot be empty"):
		return fmt.Errorf("%s rejected: %s", op, msg)
	case strings.Contains(msg, "Cannot revoke contract owner"):
		return fmt.Errorf("%s: %w", op, interfaces.ErrCannotRevokeOwner)
	default:
		return fmt.Errorf("%w: %s: %v", interfaces.ErrLedgerUnavailable, op, err)
	}
}
