// Package storage implements content-addressed stores for certificate
// documents. Backends are created from location URIs via the factory:
//
//   - ipfs://host:port?timeout=30s - IPFS node (primary; real CIDs)
//   - file:///var/lib/certs       - local filesystem
//   - s3://bucket/prefix?region=x - Amazon S3 or compatible
//   - vault://host:port/mount/path - HashiCorp Vault KV
//
// A multi-store aggregates several backends: writes replicate to every
// available backend, reads fall through to the first that has the content.
// Content is permanent once stored; no backend exposes deletion.
package storage
