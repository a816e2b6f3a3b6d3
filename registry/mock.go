package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

// MockLedger mocks the interfaces.Ledger and interfaces.IssuerAdmin
// interfaces for tests that need scripted ledger behavior.
type MockLedger struct {
	mock.Mock
}

// SubmitIssuance mocks the SubmitIssuance method.
func (m *MockLedger) SubmitIssuance(ctx context.Context, req interfaces.IssuanceRequest) (interfaces.TxHash, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(interfaces.TxHash), args.Error(1)
}

// SubmitRevocation mocks the SubmitRevocation method.
func (m *MockLedger) SubmitRevocation(ctx context.Context, key interfaces.RecordKey) (interfaces.TxHash, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(interfaces.TxHash), args.Error(1)
}

// GetReceipt mocks the GetReceipt method.
func (m *MockLedger) GetReceipt(ctx context.Context, tx interfaces.TxHash) (*interfaces.LedgerReceipt, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.LedgerReceipt), args.Error(1)
}

// QueryByKey mocks the QueryByKey method.
func (m *MockLedger) QueryByKey(ctx context.Context, key interfaces.RecordKey) (*interfaces.CertificateRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.CertificateRecord), args.Error(1)
}

// IsAuthorized mocks the IsAuthorized method.
func (m *MockLedger) IsAuthorized(ctx context.Context, actor interfaces.ActorAddress) (bool, error) {
	args := m.Called(ctx, actor)
	return args.Bool(0), args.Error(1)
}

// Owner mocks the Owner method.
func (m *MockLedger) Owner(ctx context.Context) (interfaces.ActorAddress, error) {
	args := m.Called(ctx)
	return args.Get(0).(interfaces.ActorAddress), args.Error(1)
}

// SignerAddress mocks the SignerAddress method.
func (m *MockLedger) SignerAddress() interfaces.ActorAddress {
	args := m.Called()
	return args.Get(0).(interfaces.ActorAddress)
}

// Available mocks the Available method.
func (m *MockLedger) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// AuthorizeIssuer mocks the AuthorizeIssuer method.
func (m *MockLedger) AuthorizeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	args := m.Called(ctx, issuer)
	return args.Get(0).(interfaces.TxHash), args.Error(1)
}

// RevokeIssuer mocks the RevokeIssuer method.
func (m *MockLedger) RevokeIssuer(ctx context.Context, issuer interfaces.ActorAddress) (interfaces.TxHash, error) {
	args := m.Called(ctx, issuer)
	return args.Get(0).(interfaces.TxHash), args.Error(1)
}
