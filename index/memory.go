// Package index provides off-chain mirror implementations. The mirror is an
// eventually-consistent convenience layer: it correlates application
// certificate IDs with ledger record keys and carries metadata the ledger
// does not store. It is never the source of truth for validity.
package index

import (
	"context"
	"sync"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// MemoryIndex is an in-memory off-chain index for tests and single-node
// deployments without a database.
type MemoryIndex struct {
	mu    sync.RWMutex
	byApp map[interfaces.ApplicationCertID]*interfaces.IndexRecord
	byKey map[interfaces.RecordKey]interfaces.ApplicationCertID
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		byApp: make(map[interfaces.ApplicationCertID]*interfaces.IndexRecord),
		byKey: make(map[interfaces.RecordKey]interfaces.ApplicationCertID),
	}
}

// Upsert inserts or replaces a row keyed by application certificate ID.
func (m *MemoryIndex) Upsert(_ context.Context, record *interfaces.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Drop a stale record key mapping if the row is re-pointed.
	if old, ok := m.byApp[record.ApplicationCertID]; ok && old.RecordKey != nil {
		if record.RecordKey == nil || !old.RecordKey.Equal(*record.RecordKey) {
			delete(m.byKey, *old.RecordKey)
		}
	}

	stored := cloneRecord(record)
	m.byApp[record.ApplicationCertID] = stored
	if stored.RecordKey != nil {
		m.byKey[*stored.RecordKey] = stored.ApplicationCertID
	}
	return nil
}

// FindByApplicationID returns the row for an application certificate ID.
func (m *MemoryIndex) FindByApplicationID(_ context.Context, id interfaces.ApplicationCertID) (*interfaces.IndexRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byApp[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRecord(record), nil
}

// FindByRecordKey returns the row referencing a ledger record key.
func (m *MemoryIndex) FindByRecordKey(_ context.Context, key interfaces.RecordKey) (*interfaces.IndexRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[key]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	record, ok := m.byApp[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRecord(record), nil
}

// Available always reports true.
func (m *MemoryIndex) Available(_ context.Context) bool {
	return true
}

func cloneRecord(record *interfaces.IndexRecord) *interfaces.IndexRecord {
	clone := *record
	if record.RecordKey != nil {
		key := *record.RecordKey
		clone.RecordKey = &key
	}
	if record.TransactionHash != nil {
		hash := *record.TransactionHash
		clone.TransactionHash = &hash
	}
	if record.IssuedAt != nil {
		issuedAt := *record.IssuedAt
		clone.IssuedAt = &issuedAt
	}
	return &clone
}
