package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// IPFSStore implements a content store backed by an IPFS node. The content
// identifier is the CID reported by the node, so documents uploaded here are
// addressable by any IPFS gateway.
type IPFSStore struct {
	shell       *shell.Shell
	host        string
	port        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSStore creates an IPFS content store connected to the node at the
// specified host and port.
func NewIPFSStore(host, port, timeout string, log *slog.Logger) (*IPFSStore, error) {
	apiURL := fmt.Sprintf("%s:%s", host, port)
	uri := fmt.Sprintf("ipfs://%s/?timeout=%s", apiURL, timeout)

	return &IPFSStore{
		shell:       shell.NewShell(apiURL),
		host:        host,
		port:        port,
		log:         log,
		locationURI: uri,
	}, nil
}

// Put adds data to IPFS, pins it, and returns the node-assigned CID.
// Returns ErrStorageUnavailable if the node is not accessible.
func (s *IPFSStore) Put(ctx context.Context, data []byte, mediaType string) (interfaces.ContentID, error) {
	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return "", interfaces.ErrStorageUnavailable
	}

	cid, err := s.shell.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("%w: add failed: %v", interfaces.ErrStorageUnavailable, err)
	}

	s.log.Debug("Stored content in IPFS",
		slog.String("cid", cid),
		slog.String("mediaType", mediaType),
		slog.Int("size", len(data)))

	return interfaces.ContentID(cid), nil
}

// Get retrieves content from IPFS by CID. Returns ErrNotFound if the content
// does not exist on the node, or ErrStorageUnavailable if the node is not
// accessible.
func (s *IPFSStore) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	start := time.Now()

	if !s.shell.IsUp() {
		return nil, interfaces.ErrStorageUnavailable
	}

	reader, err := s.shell.Cat(ipfsPath(id))
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "could not be found") {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("%w: cat failed: %v", interfaces.ErrStorageUnavailable, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read failed: %v", interfaces.ErrStorageUnavailable, err)
	}

	s.log.Debug("Fetched content from IPFS",
		slog.String("cid", id.String()),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Exists checks whether content with this CID is resolvable on the node.
func (s *IPFSStore) Exists(ctx context.Context, id interfaces.ContentID) (bool, error) {
	if !s.shell.IsUp() {
		return false, interfaces.ErrStorageUnavailable
	}

	_, err := s.shell.ObjectStat(ipfsPath(id))
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "could not be found") {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat failed: %v", interfaces.ErrStorageUnavailable, err)
	}
	return true, nil
}

// Available checks if the IPFS node is accessible.
func (s *IPFSStore) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// Name returns a unique identifier for this store.
func (s *IPFSStore) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}

// LocationURI returns the URI that identifies this store.
func (s *IPFSStore) LocationURI() string {
	return s.locationURI
}

func ipfsPath(id interfaces.ContentID) string {
	return "/ipfs/" + id.String()
}
