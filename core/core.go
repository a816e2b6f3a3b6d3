// Package core orchestrates certificate issuance, verification, and
// revocation across the ledger, the content store, and the off-chain index.
// The ledger is the only source of truth for certificate validity; the index
// is a best-effort mirror and the content store holds the documents records
// point at.
package core

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

const (
	// Uploads are restricted to PDF documents of at most 10 MiB.
	allowedMediaType = "application/pdf"
	maxContentSize   = 10 << 20

	defaultConfirmTimeout = 90 * time.Second
	defaultPollInterval   = 2 * time.Second
	defaultMaxIDAttempts  = 5
)

// Config carries the collaborators and tunables for a RegistryCore.
type Config struct {
	Ledger interfaces.Ledger
	Store  interfaces.ContentStore
	Index  interfaces.OffChainIndex

	// Policy is the optional advisory authorization check used to fail fast
	// before spending a transaction. The ledger re-checks regardless.
	Policy interfaces.AuthorizationPolicy

	Log *slog.Logger

	// ConfirmTimeout bounds how long issuance and revocation wait for a
	// receipt before the outcome is reported as ambiguous.
	ConfirmTimeout time.Duration

	// PollInterval is the receipt polling period.
	PollInterval time.Duration

	// MaxIDAttempts bounds application certificate ID regeneration on
	// collision.
	MaxIDAttempts int
}

// RegistryCore implements the certificate registry operations.
type RegistryCore struct {
	ledger interfaces.Ledger
	store  interfaces.ContentStore
	index  interfaces.OffChainIndex
	policy interfaces.AuthorizationPolicy
	log    *slog.Logger

	confirmTimeout time.Duration
	pollInterval   time.Duration
	maxIDAttempts  int

	locks keyedMutex

	// Injectable for deterministic tests.
	newID    func() interfaces.ApplicationCertID
	newNonce func() uint64
	now      func() time.Time
}

// New creates a RegistryCore. Ledger, Store, and Index are required.
func New(cfg Config) (*RegistryCore, error) {
	if cfg.Ledger == nil || cfg.Store == nil || cfg.Index == nil {
		return nil, errors.New("core: ledger, store, and index are required")
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	c := &RegistryCore{
		ledger:         cfg.Ledger,
		store:          cfg.Store,
		index:          cfg.Index,
		policy:         cfg.Policy,
		log:            log,
		confirmTimeout: cfg.ConfirmTimeout,
		pollInterval:   cfg.PollInterval,
		maxIDAttempts:  cfg.MaxIDAttempts,
		newID:          newApplicationCertID,
		newNonce:       newNonce,
		now:            time.Now,
	}
	if c.confirmTimeout <= 0 {
		c.confirmTimeout = defaultConfirmTimeout
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxIDAttempts <= 0 {
		c.maxIDAttempts = defaultMaxIDAttempts
	}
	return c, nil
}

// UploadMetadata is the caller-supplied descriptive metadata stored alongside
// an uploaded document in the off-chain index.
type UploadMetadata struct {
	StudentName string
	CourseName  string
	Grade       string
	Description string
}

// UploadContent validates and stores a certificate document, then creates a
// pending index row under a fresh application certificate ID. Nothing touches
// the ledger yet.
func (c *RegistryCore) UploadContent(ctx context.Context, data []byte, mediaType string, meta UploadMetadata) (*interfaces.IndexRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", interfaces.ErrInvalidContent)
	}
	if len(data) > maxContentSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", interfaces.ErrInvalidContent, maxContentSize)
	}
	if mediaType != allowedMediaType {
		return nil, fmt.Errorf("%w: media type %q not allowed", interfaces.ErrInvalidContent, mediaType)
	}
	if meta.StudentName == "" || meta.CourseName == "" {
		return nil, fmt.Errorf("%w: student name and course name are required", interfaces.ErrInvalidContent)
	}

	contentID, err := c.store.Put(ctx, data, mediaType)
	if err != nil {
		return nil, fmt.Errorf("store certificate document: %w", err)
	}

	appID, err := c.generateApplicationID(ctx)
	if err != nil {
		return nil, err
	}

	record := &interfaces.IndexRecord{
		ApplicationCertID: appID,
		State:             interfaces.StatePending,
		StudentName:       meta.StudentName,
		CourseName:        meta.CourseName,
		Grade:             meta.Grade,
		Description:       meta.Description,
		ContentID:         contentID,
		CreatedAt:         c.now().UTC(),
	}
	if err := c.index.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: record pending certificate: %v", interfaces.ErrIndexUnavailable, err)
	}

	c.log.Info("Stored certificate document",
		slog.String("applicationCertID", appID.String()),
		slog.String("contentID", contentID.String()),
		slog.Int("size", len(data)))
	return record, nil
}

// ContentByApplicationID fetches the stored document for a certificate.
func (c *RegistryCore) ContentByApplicationID(ctx context.Context, id interfaces.ApplicationCertID) ([]byte, interfaces.ContentID, error) {
	row, err := c.index.FindByApplicationID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("look up certificate %s: %w", id, err)
	}
	data, err := c.store.Get(ctx, row.ContentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch document %s: %w", row.ContentID, err)
	}
	return data, row.ContentID, nil
}

// Health reports per-component connectivity. Components are probed
// independently so one outage does not mask another.
type Health struct {
	Ledger bool `json:"ledger"`
	Index  bool `json:"index"`
	Store  bool `json:"storage"`
}

// Healthy reports whether every component is reachable.
func (h Health) Healthy() bool {
	return h.Ledger && h.Index && h.Store
}

// Health probes the ledger, the index, and the content store.
func (c *RegistryCore) Health(ctx context.Context) Health {
	return Health{
		Ledger: c.ledger.Available(ctx),
		Index:  c.index.Available(ctx),
		Store:  c.store.Available(ctx),
	}
}

func (c *RegistryCore) generateApplicationID(ctx context.Context) (interfaces.ApplicationCertID, error) {
	for attempt := 0; attempt < c.maxIDAttempts; attempt++ {
		id := c.newID()
		_, err := c.index.FindByApplicationID(ctx, id)
		if errors.Is(err, interfaces.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: probe certificate id: %v", interfaces.ErrIndexUnavailable, err)
		}
		c.log.Warn("Application certificate ID collision", slog.String("id", id.String()))
	}
	return "", interfaces.ErrIDGenerationExhausted
}

func newApplicationCertID() interfaces.ApplicationCertID {
	entropy := uuid.New()
	return interfaces.ApplicationCertID("CERT-" + hex.EncodeToString(entropy[:10]))
}

func newNonce() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return binary.BigEndian.Uint64(buf[:])
}

// keyedMutex serializes work per application certificate ID. Entries are
// reference counted so the map does not grow with the ID space.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[interfaces.ApplicationCertID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(id interfaces.ApplicationCertID) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[interfaces.ApplicationCertID]*lockEntry)
	}
	entry, ok := k.locks[id]
	if !ok {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
