package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("%PDF-1.4 test certificate document")

	id, err := store.Put(ctx, data, "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Content addressing: the same bytes yield the same identifier.
	id2, err := store.Put(ctx, data, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	fetched, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)

	exists, err := store.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.True(t, store.Available(ctx))
}

func TestFileStore_NotFound(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Get(ctx, interfaces.ContentID("0000000000000000000000000000000000000000000000000000000000000000"))
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	exists, err := store.Exists(ctx, interfaces.ContentID("deadbeef"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStoreFactory_StoreFor(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := NewStoreFactory(logger)

	tests := []struct {
		name        string
		uri         string
		namePrefix  string
		expectError bool
	}{
		{
			name:       "file store",
			uri:        "file://" + t.TempDir(),
			namePrefix: "file-",
		},
		{
			name:       "ipfs store",
			uri:        "ipfs://localhost:5001/?timeout=10s",
			namePrefix: "ipfs-",
		},
		{
			name:       "s3 store",
			uri:        "s3://certbucket/certs/?region=eu-west-1",
			namePrefix: "s3-",
		},
		{
			name:       "vault store",
			uri:        "vault://localhost:8200/secret/certificates?token=dev",
			namePrefix: "vault-",
		},
		{
			name:        "vault store without mount path",
			uri:         "vault://localhost:8200/",
			expectError: true,
		},
		{
			name:        "unsupported scheme",
			uri:         "gopher://example.com/",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := factory.StoreFor(interfaces.StoreLocation{Raw: tt.uri})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(store.Name(), tt.namePrefix),
				"store name %q should start with %q", store.Name(), tt.namePrefix)
		})
	}
}

func TestStoreFactory_CreateMultiStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := NewStoreFactory(logger)

	fileLoc, err := interfaces.NewStoreLocation("file://" + t.TempDir())
	require.NoError(t, err)
	badLoc := interfaces.StoreLocation{Raw: "gopher://nope"}

	// Invalid entries are skipped, the remaining backend still serves.
	multi, err := factory.CreateMultiStore([]interfaces.StoreLocation{fileLoc, badLoc})
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("replicated document")

	id, err := multi.Put(ctx, data, "application/pdf")
	require.NoError(t, err)

	fetched, err := multi.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)

	_, err = factory.CreateMultiStore([]interfaces.StoreLocation{badLoc})
	assert.Error(t, err)
}
