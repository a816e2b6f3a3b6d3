package storage

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// VaultStore implements a content store on a HashiCorp Vault KV v2 mount.
// Each blob is one KV entry keyed by its SHA-256 identifier, with the data
// base64-encoded in the secret payload. Useful when certificate documents
// must live inside an existing Vault deployment.
type VaultStore struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultStore creates a Vault content store.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: KV v2 mount (e.g. "secret")
//   - dataPath: path within the mount (e.g. "certificates")
//   - token: Vault token
func NewVaultStore(address, mountPath, dataPath, token string, log *slog.Logger) (*VaultStore, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address
	cfg.Timeout = 30 * time.Second

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(token)

	return &VaultStore{
		client:      client,
		mountPath:   strings.Trim(mountPath, "/"),
		dataPath:    strings.Trim(dataPath, "/"),
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", strings.TrimPrefix(address, "https://"), mountPath, dataPath),
	}, nil
}

// Put writes data under its SHA-256 identifier.
func (s *VaultStore) Put(ctx context.Context, data []byte, mediaType string) (interfaces.ContentID, error) {
	hash := sha256.Sum256(data)
	id := interfaces.ContentID(hex.EncodeToString(hash[:]))

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"content":    base64.StdEncoding.EncodeToString(data),
			"media_type": mediaType,
		},
	}

	_, err := s.client.Logical().WriteWithContext(ctx, s.secretPath(id), payload)
	if err != nil {
		return "", fmt.Errorf("%w: vault write failed: %v", interfaces.ErrStorageUnavailable, err)
	}

	s.log.Debug("Stored content in Vault",
		slog.String("contentID", id.String()),
		slog.Int("size", len(data)))

	return id, nil
}

// Get reads content by identifier. Returns ErrNotFound for missing entries.
func (s *VaultStore) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	secret, err := s.client.Logical().ReadWithContext(ctx, s.secretPath(id))
	if err != nil {
		return nil, fmt.Errorf("vault read failed: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, interfaces.ErrNotFound
	}

	inner, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	encoded, ok := inner["content"].(string)
	if !ok {
		return nil, fmt.Errorf("vault entry for %s has no content field", id)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vault content: %w", err)
	}
	return data, nil
}

// Exists checks for an entry without decoding it.
func (s *VaultStore) Exists(ctx context.Context, id interfaces.ContentID) (bool, error) {
	secret, err := s.client.Logical().ReadWithContext(ctx, s.secretPath(id))
	if err != nil {
		return false, fmt.Errorf("vault read failed: %w", err)
	}
	return secret != nil && secret.Data != nil, nil
}

// Available checks Vault reachability via the health endpoint.
func (s *VaultStore) Available(ctx context.Context) bool {
	health, err := s.client.Sys().HealthWithContext(ctx)
	if err != nil {
		s.log.Debug("Vault store unavailable", "err", err)
		return false
	}
	return health.Initialized && !health.Sealed
}

// Name returns a unique identifier for this store.
func (s *VaultStore) Name() string {
	return fmt.Sprintf("vault-%s-%s", s.mountPath, s.dataPath)
}

// LocationURI returns the URI that identifies this store.
func (s *VaultStore) LocationURI() string {
	return s.locationURI
}

func (s *VaultStore) secretPath(id interfaces.ContentID) string {
	return fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.dataPath, id.String())
}
