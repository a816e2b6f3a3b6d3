// Package policy implements the client-side authorization view: who may
// issue and revoke certificates. It mirrors the ledger contract's own
// enforcement so callers can fail fast before spending a transaction; the
// on-chain check remains the security boundary.
package policy

import (
	"context"
	"fmt"
	"sync"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// Policy is an advisory authorization state machine over actor identities:
// exactly one owner, fixed at creation, plus a mutable set of authorized
// issuers the owner manages.
type Policy struct {
	mu      sync.RWMutex
	owner   interfaces.ActorAddress
	issuers map[interfaces.ActorAddress]bool
}

// New creates a policy owned by the given actor. The owner is always
// authorized, matching the ledger contract's constructor behavior.
func New(owner interfaces.ActorAddress) (*Policy, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("policy owner must not be the zero address")
	}

	return &Policy{
		owner:   owner,
		issuers: make(map[interfaces.ActorAddress]bool),
	}, nil
}

// Owner returns the registry owner.
func (p *Policy) Owner() interfaces.ActorAddress {
	return p.owner
}

// IsAuthorized reports whether the actor is the owner or an authorized
// issuer.
func (p *Policy) IsAuthorized(actor interfaces.ActorAddress) bool {
	if actor == p.owner {
		return true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.issuers[actor]
}

// Authorize adds an issuer. Only the owner may call this.
func (p *Policy) Authorize(caller, issuer interfaces.ActorAddress) error {
	if caller != p.owner {
		return fmt.Errorf("authorize issuer: %w", interfaces.ErrNotAuthorized)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.issuers[issuer] = true
	return nil
}

// Revoke removes an issuer. Only the owner may call this, and the owner
// cannot remove itself.
func (p *Policy) Revoke(caller, issuer interfaces.ActorAddress) error {
	if caller != p.owner {
		return fmt.Errorf("revoke issuer: %w", interfaces.ErrNotAuthorized)
	}
	if issuer == p.owner {
		return fmt.Errorf("revoke issuer: %w", interfaces.ErrCannotRevokeOwner)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.issuers, issuer)
	return nil
}

// SyncFromLedger refreshes the advisory issuer set from the ledger's own
// authorization state for a known actor list. Actors the ledger no longer
// authorizes are dropped; newly authorized ones are added.
func (p *Policy) SyncFromLedger(ctx context.Context, ledger interfaces.Ledger, actors []interfaces.ActorAddress) error {
	for _, actor := range actors {
		authorized, err := ledger.IsAuthorized(ctx, actor)
		if err != nil {
			return fmt.Errorf("policy sync: %w", err)
		}

		p.mu.Lock()
		if authorized {
			p.issuers[actor] = true
		} else {
			delete(p.issuers, actor)
		}
		p.mu.Unlock()
	}
	return nil
}
