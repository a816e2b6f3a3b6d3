package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// StoreFactory creates content store backends from URI strings and manages
// multi-backend configurations for redundant storage.
type StoreFactory struct {
	log *slog.Logger
}

// NewStoreFactory creates a factory instance.
func NewStoreFactory(log *slog.Logger) *StoreFactory {
	return &StoreFactory{log: log}
}

// StoreFor creates a content store from a location URI.
// The URI format is [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - ipfs:// - IPFS node via its HTTP API
//   - file:// - Local filesystem storage
//   - s3:// - Amazon S3 or compatible object storage
//   - vault:// - HashiCorp Vault KV v2 secrets engine
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *StoreFactory) StoreFor(location interfaces.StoreLocation) (interfaces.ContentStore, error) {
	// Re-parse the raw URI: userinfo and the host/port split are not kept on
	// the parsed location.
	u, err := url.Parse(location.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidStoreURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "ipfs":
		return sf.createIPFSStore(u)
	case "file":
		return sf.createFileStore(u)
	case "s3":
		return sf.createS3Store(u)
	case "vault":
		return sf.createVaultStore(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidStoreURI, u.Scheme)
	}
}

// CreateMultiStore creates a multi-store from a list of location URIs.
// Backends that fail to initialize are skipped with a warning; an error is
// returned only when no backend could be created at all.
func (sf *StoreFactory) CreateMultiStore(locations []interfaces.StoreLocation) (interfaces.ContentStore, error) {
	backends := make([]interfaces.ContentStore, 0, len(locations))

	for _, location := range locations {
		backend, err := sf.StoreFor(location)
		if err != nil {
			sf.log.Warn("Failed to create content store backend",
				"err", err,
				slog.String("locationURI", location.String()))
			continue
		}
		backends = append(backends, backend)
	}

	if len(backends) == 0 {
		return nil, fmt.Errorf("no valid content store backends created")
	}

	return NewMultiStore(backends, sf.log), nil
}

// createIPFSStore creates an IPFS store.
// URI format: ipfs://host:port/?timeout=30s
func (sf *StoreFactory) createIPFSStore(u *url.URL) (interfaces.ContentStore, error) {
	sf.log.Debug("Creating IPFS store", slog.String("uri", u.String()))

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "5001" // Default IPFS API port
	}

	timeout := u.Query().Get("timeout")
	if timeout == "" {
		timeout = "30s"
	}

	return NewIPFSStore(host, port, timeout, sf.log)
}

// createFileStore creates a filesystem store.
// URI format: file:///absolute/path/ or file://./relative/path/
func (sf *StoreFactory) createFileStore(u *url.URL) (interfaces.ContentStore, error) {
	sf.log.Debug("Creating file store", slog.String("uri", u.String()))

	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %q", interfaces.ErrInvalidStoreURI, u.String())
	}

	return NewFileStore(path, sf.log)
}

// createS3Store creates an S3 or S3-compatible store.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/prefix/?region=us-west-2&endpoint=custom.s3.com
// Without embedded credentials the bucket is assumed to allow anonymous
// access and write operations may fail.
func (sf *StoreFactory) createS3Store(u *url.URL) (interfaces.ContentStore, error) {
	sf.log.Debug("Creating S3 store", slog.String("uri", u.String()))

	bucketName := u.Host
	prefix := strings.TrimPrefix(u.Path, "/")

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := query.Get("endpoint")

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	} else {
		sf.log.Debug("No S3 credentials provided, relying on ambient AWS configuration")
	}

	return NewS3Store(bucketName, prefix, region, endpoint, accessKey, secretKey, sf.log)
}

// createVaultStore creates a Vault KV v2 store.
// URI format: vault://host:port/mount/data-path?token=...&tls=true
// The token may alternatively come from the VAULT_TOKEN environment variable.
func (sf *StoreFactory) createVaultStore(u *url.URL) (interfaces.ContentStore, error) {
	sf.log.Debug("Creating Vault store", slog.String("uri", u.String()))

	scheme := "http"
	if u.Query().Get("tls") == "true" {
		scheme = "https"
	}
	address := fmt.Sprintf("%s://%s", scheme, u.Host)

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if parts[0] == "" {
		return nil, fmt.Errorf("%w: vault URI missing mount path", interfaces.ErrInvalidStoreURI)
	}
	mountPath := parts[0]
	dataPath := "certificates"
	if len(parts) == 2 && parts[1] != "" {
		dataPath = parts[1]
	}

	token := u.Query().Get("token")

	return NewVaultStore(address, mountPath, dataPath, token, sf.log)
}
