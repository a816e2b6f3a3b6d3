package registry

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// SimulatedLedger is an in-memory ledger faithful to the CertificateVerifier
// contract semantics: owner auto-authorized, record key uniqueness, non-empty
// field enforcement, issuer-or-owner revocation. Confirmations are immediate
// by default; HoldConfirmations defers them so tests can exercise the
// submitted-but-unconfirmed window and late confirmation.
type SimulatedLedger struct {
	mu       sync.Mutex
	owner    interfaces.ActorAddress
	issuers  map[interfaces.ActorAddress]bool
	records  map[interfaces.RecordKey]*interfaces.CertificateRecord
	receipts map[interfaces.TxHash]*interfaces.LedgerReceipt
	pending  []*pendingTx
	actor    interfaces.ActorAddress
	hold     bool
	offline  bool
	txSeq    uint64

	// Now is the clock used for issuance timestamps. Tests may replace it.
	Now func() time.Time
}

type pendingTx struct {
	hash interfaces.TxHash

	// issuances lists the keys this transaction will commit, so duplicate
	// submissions are caught before the transaction confirms.
	issuances []interfaces.IssuanceEvent
	apply     func() *interfaces.LedgerReceipt
}

// NewSimulatedLedger creates a simulated ledger owned by the given actor.
// The owner starts authorized, matching the contract constructor, and is the
// active transaction signer until SetActor is called.
func NewSimulatedLedger(owner interfaces.ActorAddress) *SimulatedLedger {
	return &SimulatedLedger{
		owner:    owner,
		issuers:  map[interfaces.ActorAddress]bool{owner: true},
		records:  make(map[interfaces.RecordKey]*interfaces.CertificateRecord),
		receipts: make(map[interfaces.TxHash]*interfaces.LedgerReceipt),
		actor:    owner,
		Now:      time.Now,
	}
}

// SetActor switches the identity subsequent transactions are signed as.
func (s *SimulatedLedger) SetActor(actor interfaces.ActorAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = actor
}

// HoldConfirmations toggles deferred confirmation. While held, submitted
// transactions stay unconfirmed until ConfirmPending is called.
func (s *SimulatedLedger) HoldConfirmations(hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold = hold
}

// ConfirmPending applies all held transactions in submission order.
func (s *SimulatedLedger) ConfirmPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.pending {
		s.receipts[tx.hash] = tx.apply()
	}
	s.pending = nil
}

// SetOffline makes every ledger call fail with ErrLedgerUnavailable, for
// connectivity failure tests.
func (s *SimulatedLedger) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
}

func (s *SimulatedLedger) nextTxHash() interfaces.TxHash {
	s.txSeq++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], s.txSeq)
	return interfaces.TxHash(sha256.Sum256(buf[:]))
}

// SubmitIssuance validates the request the way the contract's require
// statements do (surfaced at gas estimation on a real chain) and queues the
// issuance. Duplicate keys are checked against both committed and pending
// state so a duplicate never enters the pipeline twice.
func (s *SimulatedLedger) SubmitIssuance(ctx context.Context, req interfaces.IssuanceRequest) (interfaces.TxHash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return interfaces.TxHash{}, interfaces.ErrLedgerUnavailable
	}
	if !s.issuers[s.actor] {
		return interfaces.TxHash{}, fmt.Errorf("issuance submission: %w", interfaces.ErrNotAuthorized)
	}
	if req.IssuerName == "" || req.StudentName == "" || req.CourseName == "" {
		return interfaces.TxHash{}, fmt.Errorf("issuance submission rejected: empty field")
	}
	if req.ContentID.IsZero() {
		return interfaces.TxHash{}, fmt.Errorf("issuance submission rejected: empty content id")
	}

	key, err := req.RecordKey()
	if err != nil {
		return interfaces.TxHash{}, err
	}
	if _, exists := s.records[key]; exists {
		return interfaces.TxHash{}, fmt.Errorf("issuance submission: %w", interfaces.ErrDuplicateKey)
	}
	for _, p := range s.pending {
		for _, ev := range p.issuances {
			if ev.RecordKey.Equal(key) {
				return interfaces.TxHash{}, fmt.Errorf("issuance submission: %w", interfaces.ErrDuplicateKey)
			}
		}
	}

	hash := s.nextTxHash()
	issuer := s.actor
	event := interfaces.IssuanceEvent{
		RecordKey:   key,
		StudentName: req.StudentName,
		CourseName:  req.CourseName,
		ContentID:   req.ContentID,
	}
	tx := &pendingTx{hash: hash, issuances: []interfaces.IssuanceEvent{event}}
	tx.apply = func() *interfaces.LedgerReceipt {
		s.records[key] = &interfaces.CertificateRecord{
			RecordKey:   key,
			IssuerName:  req.IssuerName,
			StudentName: req.StudentName,
			CourseName:  req.CourseName,
			ContentID:   req.ContentID,
			IssuedAt:    s.Now().Unix(),
			Issuer:      issuer,
			Valid:       true,
		}
		return &interfaces.LedgerReceipt{
			TxHash:    hash,
			Confirmed: true,
			Success:   true,
			Issuances: []interfaces.IssuanceEvent{event},
		}
	}

	if s.hold {
		s.pending = append(s.pending, tx)
	} else {
		s.receipts[hash] = tx.apply()
	}
	return hash, nil
}

// SubmitRevocation validates and queues a revocation. The contract enforces
// issuer-or-owner semantics on the transaction sender.
func (s *SimulatedLedger) SubmitRevocation(ctx context.Context, key interfaces.RecordKey) (interfaces.TxHash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return interfaces.TxHash{}, interfaces.ErrLedgerUnavailable
	}

	record, exists := s.records[key]
	if !exists {
		return interfaces.TxHash{}, fmt.Errorf("revocation submission: %w", interfaces.ErrNotFound)
	}
	if s.actor != s.owner && s.actor != record.Issuer {
		return interfaces.TxHash{}, fmt.Errorf("revocation submission: %w", interfaces.ErrNotAuthorized)
	}

	hash := s.nextTxHash()
	tx := &pendingTx{hash: hash}
	tx.apply = func() *interfaces.LedgerReceipt {
		record.Valid = false
		return &interfaces.LedgerReceipt{
			TxHash:      hash,
			Confirmed:   true,
			Success:     true,
			Revocations: []interfaces.RevocationEvent{{RecordKey: key}},
		}
	}

	if s.hold {
		s.pending = append(s.pending, tx)
	} else {
		s.receipts[hash] = tx.apply()
	}
	return hash, nil
}

// GetReceipt returns the receipt for a known transaction. Held transactions
// report Confirmed=false; unknown hashes return ErrNotFound.
func (s *SimulatedLedger) GetReceipt(ctx context.Context, tx interfaces.TxHash) (*interfaces.LedgerReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return nil, interfaces.ErrLedgerUnavailable
	}
	if receipt, ok := s.receipts[tx]; ok {
		return receipt, nil
	}
	for _, p := range s.pending {
		if p.hash == tx {
			return &interfaces.LedgerReceipt{TxHash: tx, Confirmed: false}, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

// QueryByKey reads the authoritative record.
func (s *SimulatedLedger) QueryByKey(ctx context.Context, key interfaces.RecordKey) (*interfaces.CertificateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return nil, interfaces.ErrLedgerUnavailable
	}
	record, exists := s.records[key]
	if !exists {
		return nil, interfaces.ErrNotFound
	}

	copied := *record
	return &copied, nil
}

// IsAuthorized reports whether an actor is in the issuer set.
func (s *SimulatedLedger) IsAuthorized(ctx context.Context, actor interfaces.ActorAddress) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return false, interfaces.ErrLedgerUnavailable
	}
	return s.issuers[actor], nil
}

// Owner returns the ledger owner.
func (s *SimulatedLedger) Owner(ctx context.Context) (interfaces.ActorAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return interfaces.ActorAddress{}, interfaces.ErrLedgerUnavailable
	}
	return s.owner, nil
}

// SignerAddress returns the currently active actor.
func (s *SimulatedLedger) SignerAddress() interfaces.ActorAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actor
}

// AuthorizeIssuer adds an actor to the issuer set. Owner-only.
func (s *SimulatedLedger) AuthorizeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return interfaces.TxHash{}, interfaces.ErrLedgerUnavailable
	}
	if s.actor != s.owner {
		return interfaces.TxHash{}, fmt.Errorf("issuer authorization: %w", interfaces.ErrNotAuthorized)
	}

	s.issuers[issuer] = true
	hash := s.nextTxHash()
	s.receipts[hash] = &interfaces.LedgerReceipt{TxHash: hash, Confirmed: true, Success: true}
	return hash, nil
}

// RevokeIssuer removes an actor from the issuer set. Owner-only, and the
// owner itself cannot be removed.
func (s *SimulatedLedger) RevokeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		return interfaces.TxHash{}, interfaces.ErrLedgerUnavailable
	}
	if s.actor != s.owner {
		return interfaces.TxHash{}, fmt.Errorf("issuer revocation: %w", interfaces.ErrNotAuthorized)
	}
	if issuer == s.owner {
		return interfaces.TxHash{}, fmt.Errorf("issuer revocation: %w", interfaces.ErrCannotRevokeOwner)
	}

	delete(s.issuers, issuer)
	hash := s.nextTxHash()
	s.receipts[hash] = &interfaces.LedgerReceipt{TxHash: hash, Confirmed: true, Success: true}
	return hash, nil
}

// Available reports connectivity.
func (s *SimulatedLedger) Available(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.offline
}
