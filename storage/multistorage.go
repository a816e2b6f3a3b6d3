package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// MultiStore aggregates several content stores for redundancy. Writes
// replicate to every available backend; reads fall through to the first
// backend that has the content. The first configured backend is primary and
// its content identifier is the canonical one. Backends should share an
// addressing scheme (several IPFS nodes, or the SHA-256 family of file, S3
// and Vault stores); a replica reporting a different identifier is logged
// and its copy is only reachable by that identifier.
type MultiStore struct {
	backends []interfaces.ContentStore
	log      *slog.Logger
}

// NewMultiStore creates a multi-store over the given backends.
func NewMultiStore(backends []interfaces.ContentStore, log *slog.Logger) *MultiStore {
	if log == nil {
		log = slog.Default()
	}

	return &MultiStore{
		backends: backends,
		log:      log,
	}
}

// Put stores data on every available backend and returns the primary
// identifier. Fails only if no backend accepted the write.
func (m *MultiStore) Put(ctx context.Context, data []byte, mediaType string) (interfaces.ContentID, error) {
	start := time.Now()
	var canonical interfaces.ContentID
	var errs []error

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable for put", slog.String("backend", backend.Name()))
			continue
		}

		id, err := backend.Put(ctx, data, mediaType)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			m.log.Warn("Failed to store content on backend",
				slog.String("backend", backend.Name()),
				"err", err)
			continue
		}

		if canonical.IsZero() {
			canonical = id
		} else if id != canonical {
			m.log.Warn("Replica backend reports divergent content identifier",
				slog.String("backend", backend.Name()),
				slog.String("canonical", canonical.String()),
				slog.String("replica", id.String()))
		}
	}

	if canonical.IsZero() {
		return "", fmt.Errorf("%w: all backends failed: %v", interfaces.ErrStorageUnavailable, errs)
	}

	m.log.Debug("Stored content",
		slog.String("contentID", canonical.String()),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return canonical, nil
}

// Get retrieves content from the first backend that has it.
func (m *MultiStore) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	var errs []error

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			continue
		}

		data, err := backend.Get(ctx, id)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("content %s not retrievable: %v", id, errs)
	}
	return nil, interfaces.ErrNotFound
}

// Exists reports whether any backend has the content.
func (m *MultiStore) Exists(ctx context.Context, id interfaces.ContentID) (bool, error) {
	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			continue
		}

		exists, err := backend.Exists(ctx, id)
		if err == nil && exists {
			return true, nil
		}
	}
	return false, nil
}

// Available reports whether at least one backend is reachable.
func (m *MultiStore) Available(ctx context.Context) bool {
	for _, backend := range m.backends {
		if backend.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns an identifier listing the aggregated backends.
func (m *MultiStore) Name() string {
	name := "multi"
	for _, backend := range m.backends {
		name += "-" + backend.Name()
	}
	return name
}

// LocationURI returns the primary backend's URI.
func (m *MultiStore) LocationURI() string {
	if len(m.backends) == 0 {
		return "multi://empty"
	}
	return m.backends[0].LocationURI()
}
