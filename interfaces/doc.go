// Package interfaces defines the core types and component contracts for the
// certificate registry system: the authoritative ledger record, the off-chain
// index mirror, the content store, and the error taxonomy shared by all
// components. It provides the contract between components without
// implementation details.
package interfaces
