// Package registry adapts the on-chain CertificateVerifier contract to the
// interfaces.Ledger contract. It translates typed contract calls and decoded
// events into the registry's data model, and maps contract revert reasons
// onto the shared error taxonomy.
//
// The package also provides a testify-based mock of the ledger and a fully
// functional in-memory simulated ledger that reproduces the contract's
// authorization, uniqueness, and revocation semantics for tests.
package registry
