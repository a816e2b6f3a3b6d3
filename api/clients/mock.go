package clients

import (
	"github.com/certchain/certificate-registry-backend/api"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockCertificateProvider implements api.CertificateProvider for testing.
type MockCertificateProvider struct {
	mock.Mock
}

func (m *MockCertificateProvider) Upload(document []byte, meta api.UploadMetadata) (*api.UploadResponse, error) {
	args := m.Called(document, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UploadResponse), args.Error(1)
}

func (m *MockCertificateProvider) Issue(id string, req api.IssueRequest) (*api.IssueResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.IssueResponse), args.Error(1)
}

func (m *MockCertificateProvider) AttachTransaction(id string, txHash string) (*api.IssueResponse, error) {
	args := m.Called(id, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.IssueResponse), args.Error(1)
}

func (m *MockCertificateProvider) VerifyByKey(recordKey string) (*interfaces.VerificationResult, error) {
	args := m.Called(recordKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.VerificationResult), args.Error(1)
}

func (m *MockCertificateProvider) VerifyByApplicationID(id string) (*interfaces.VerificationResult, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.VerificationResult), args.Error(1)
}

func (m *MockCertificateProvider) VerifyByTransaction(txHash string) (*interfaces.VerificationResult, error) {
	args := m.Called(txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.VerificationResult), args.Error(1)
}

func (m *MockCertificateProvider) Revoke(recordKey string) (*api.RevokeResponse, error) {
	args := m.Called(recordKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RevokeResponse), args.Error(1)
}

func (m *MockCertificateProvider) Health() (*api.HealthResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.HealthResponse), args.Error(1)
}
