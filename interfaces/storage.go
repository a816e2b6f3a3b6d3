package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ContentStore provides content-addressed storage for certificate documents.
// Content is treated as permanent once stored: there is deliberately no
// delete operation, matching the pinning semantics of the backends.
type ContentStore interface {
	// Put stores a blob and returns its content identifier.
	Put(ctx context.Context, data []byte, mediaType string) (ContentID, error)

	// Get retrieves a blob by content identifier. Returns ErrNotFound if the
	// content does not exist.
	Get(ctx context.Context, id ContentID) ([]byte, error)

	// Exists checks for a blob without fetching it.
	Exists(ctx context.Context, id ContentID) (bool, error)

	// Available checks if the backend is accessible.
	Available(ctx context.Context) bool

	// Name returns an identifier for logging.
	Name() string

	// LocationURI returns the URI identifying this backend.
	LocationURI() string
}

// ContentStoreFactory creates content store backends from location URIs.
type ContentStoreFactory interface {
	// StoreFor creates a backend from a URI.
	// Supports ipfs://, file://, s3://, vault://
	StoreFor(location StoreLocation) (ContentStore, error)

	// CreateMultiStore creates an aggregated backend that replicates writes
	// across all configured backends and falls through on reads.
	CreateMultiStore(locations []StoreLocation) (ContentStore, error)
}

// StoreLocation is a parsed content store URI.
type StoreLocation struct {
	Raw    string
	Scheme string
	Host   string
	Path   string
	Query  url.Values
}

// NewStoreLocation parses and validates a content store URI.
func NewStoreLocation(uri string) (StoreLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return StoreLocation{}, fmt.Errorf("%w: %v", ErrInvalidStoreURI, err)
	}

	switch parsed.Scheme {
	case "ipfs", "file", "s3", "vault":
	default:
		return StoreLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidStoreURI, parsed.Scheme)
	}

	return StoreLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
	}, nil
}

// String returns the original URI.
func (loc StoreLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc StoreLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// ErrInvalidStoreURI is returned when a content store URI is malformed or
// uses an unsupported scheme.
var ErrInvalidStoreURI = errors.New("invalid content store URI")
