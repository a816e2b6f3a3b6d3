package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certchain/certificate-registry-backend/api/clients"
	"github.com/certchain/certificate-registry-backend/interfaces"
)

func TestRunVerify(t *testing.T) {
	provider := new(clients.MockCertificateProvider)
	provider.On("VerifyByKey", "0xabc").
		Return(&interfaces.VerificationResult{Valid: true}, nil)
	provider.On("VerifyByApplicationID", "CERT-0102030405060708090a").
		Return(&interfaces.VerificationResult{Valid: false, Reason: "certificate not yet issued"}, nil)
	provider.On("VerifyByTransaction", "0xdef").
		Return(&interfaces.VerificationResult{Valid: true}, nil)

	result, err := runVerify(provider, "key", "0xabc")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = runVerify(provider, "id", "CERT-0102030405060708090a")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "certificate not yet issued", result.Reason)

	result, err = runVerify(provider, "tx", "0xdef")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = runVerify(provider, "block", "0xabc")
	assert.ErrorContains(t, err, "unknown lookup kind")

	provider.AssertExpectations(t)
}
