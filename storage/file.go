package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// FileStore implements a content store on the local filesystem. The content
// identifier is the hex-encoded SHA-256 of the data, so the store is
// self-verifying: re-putting identical content yields the same identifier.
// Used for local development and tests.
type FileStore struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a file content store rooted at the given directory.
func NewFileStore(baseDir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "certificates"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileStore{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Put writes data under its SHA-256 identifier.
func (s *FileStore) Put(ctx context.Context, data []byte, mediaType string) (interfaces.ContentID, error) {
	hash := sha256.Sum256(data)
	id := interfaces.ContentID(hex.EncodeToString(hash[:]))

	path := s.filePath(id)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: write failed: %v", interfaces.ErrStorageUnavailable, err)
	}

	s.log.Debug("Stored content in file",
		slog.String("path", path),
		slog.String("contentID", id.String()),
		slog.String("mediaType", mediaType))

	return id, nil
}

// Get reads content by identifier. Returns ErrNotFound if the file does not
// exist.
func (s *FileStore) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	path := s.filePath(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// Exists checks for content without reading it.
func (s *FileStore) Exists(ctx context.Context, id interfaces.ContentID) (bool, error) {
	_, err := os.Stat(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// Available checks that the base directory still exists.
func (s *FileStore) Available(ctx context.Context) bool {
	_, err := os.Stat(s.baseDir)
	if err != nil {
		s.log.Debug("File store unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this store.
func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this store.
func (s *FileStore) LocationURI() string {
	return s.locationURI
}

func (s *FileStore) filePath(id interfaces.ContentID) string {
	// Identifiers are hex strings; base-name them anyway so a malformed ID
	// cannot escape the store directory.
	return filepath.Join(s.baseDir, "certificates", filepath.Base(id.String()))
}
