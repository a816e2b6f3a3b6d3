package httpserver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/certchain/certificate-registry-backend/api"
	"github.com/certchain/certificate-registry-backend/api/clients"
	"github.com/certchain/certificate-registry-backend/core"
	"github.com/certchain/certificate-registry-backend/index"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/certchain/certificate-registry-backend/registry"
	"github.com/certchain/certificate-registry-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPDF = bytes.Repeat([]byte("%PDF-1.4 handler test "), 8)

type serverEnv struct {
	ts     *httptest.Server
	client *clients.CertificateClient
	ledger *registry.SimulatedLedger
	owner  interfaces.ActorAddress
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	owner, err := interfaces.NewActorAddressFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	ledger := registry.NewSimulatedLedger(owner)
	store, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	registryCore, err := core.New(core.Config{
		Ledger:         ledger,
		Store:          store,
		Index:          index.NewMemoryIndex(),
		Log:            logger,
		ConfirmTimeout: 2 * time.Second,
		PollInterval:   5 * time.Millisecond,
	})
	require.NoError(t, err)

	srv, err := New(&HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      logger,
		DrainDuration:            10 * time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}, NewHandler(registryCore, logger))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.getRouter())
	t.Cleanup(ts.Close)

	return &serverEnv{
		ts:     ts,
		client: &clients.CertificateClient{ServerAddr: ts.URL},
		ledger: ledger,
		owner:  owner,
	}
}

func TestHandler_FullLifecycle(t *testing.T) {
	env := newServerEnv(t)

	uploaded, err := env.client.Upload(testPDF, api.UploadMetadata{
		StudentName: "Ada Lovelace",
		CourseName:  "Distributed Systems",
		Grade:       "A",
	})
	require.NoError(t, err)
	assert.Equal(t, string(interfaces.StatePending), uploaded.State)
	assert.NotEmpty(t, uploaded.ApplicationCertID)
	assert.NotEmpty(t, uploaded.ContentID)

	// A pending certificate never verifies as valid.
	pending, err := env.client.VerifyByApplicationID(uploaded.ApplicationCertID)
	require.NoError(t, err)
	assert.False(t, pending.Valid)

	issued, err := env.client.Issue(uploaded.ApplicationCertID, api.IssueRequest{
		IssuerName: "CertChain University",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.RecordKey)
	assert.NotEmpty(t, issued.TransactionHash)

	byKey, err := env.client.VerifyByKey(issued.RecordKey)
	require.NoError(t, err)
	assert.True(t, byKey.Valid)
	assert.Equal(t, "Ada Lovelace", byKey.StudentName)
	assert.Equal(t, "A", byKey.Grade)

	byID, err := env.client.VerifyByApplicationID(uploaded.ApplicationCertID)
	require.NoError(t, err)
	assert.True(t, byID.Valid)

	byTx, err := env.client.VerifyByTransaction(issued.TransactionHash)
	require.NoError(t, err)
	assert.True(t, byTx.Valid)
	assert.Equal(t, issued.RecordKey, byTx.RecordKey)

	// The stored document is served back byte for byte.
	resp, err := http.Get(env.ts.URL + "/api/certificates/" + uploaded.ApplicationCertID + "/content")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, testPDF, body)

	revoked, err := env.client.Revoke(issued.RecordKey)
	require.NoError(t, err)
	assert.True(t, revoked.Revoked)
	assert.NotEmpty(t, revoked.TransactionHash)

	afterRevoke, err := env.client.VerifyByKey(issued.RecordKey)
	require.NoError(t, err)
	assert.False(t, afterRevoke.Valid)
	assert.NotEmpty(t, afterRevoke.Reason)
}

func TestHandler_AttachTransaction(t *testing.T) {
	env := newServerEnv(t)

	uploaded, err := env.client.Upload(testPDF, api.UploadMetadata{
		StudentName: "Grace Hopper",
		CourseName:  "Compilers",
	})
	require.NoError(t, err)

	// Simulate a browser wallet submitting the issuance directly.
	txHash, err := env.ledger.SubmitIssuance(context.Background(), interfaces.IssuanceRequest{
		IssuerName:  "CertChain University",
		StudentName: "Grace Hopper",
		CourseName:  "Compilers",
		ContentID:   interfaces.ContentID(uploaded.ContentID),
		Nonce:       7,
	})
	require.NoError(t, err)

	attached, err := env.client.AttachTransaction(uploaded.ApplicationCertID, txHash.String())
	require.NoError(t, err)
	assert.NotEmpty(t, attached.RecordKey)

	verdict, err := env.client.VerifyByApplicationID(uploaded.ApplicationCertID)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}

func TestHandler_UploadRejectsWrongType(t *testing.T) {
	env := newServerEnv(t)

	_, err := env.client.Upload([]byte("GIF89a not a pdf"), api.UploadMetadata{
		StudentName: "Ada Lovelace",
		CourseName:  "Distributed Systems",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestHandler_IssueUnauthorized(t *testing.T) {
	env := newServerEnv(t)

	uploaded, err := env.client.Upload(testPDF, api.UploadMetadata{
		StudentName: "Ada Lovelace",
		CourseName:  "Distributed Systems",
	})
	require.NoError(t, err)

	stranger, err := interfaces.NewActorAddressFromHex("0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	env.ledger.SetActor(stranger)

	_, err = env.client.Issue(uploaded.ApplicationCertID, api.IssueRequest{IssuerName: "CertChain University"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHandler_IssueUnknownID(t *testing.T) {
	env := newServerEnv(t)

	_, err := env.client.Issue("CERT-missing", api.IssueRequest{IssuerName: "CertChain University"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHandler_VerifyUnknownIsNotAnError(t *testing.T) {
	env := newServerEnv(t)

	verdict, err := env.client.VerifyByKey("0x1234567890123456789012345678901234567890123456789012345678901234")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.NotEmpty(t, verdict.Reason)

	verdict, err = env.client.VerifyByApplicationID("CERT-missing")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
}

func TestHandler_MalformedKeyIsBadRequest(t *testing.T) {
	env := newServerEnv(t)

	resp, err := http.Get(env.ts.URL + "/api/verify/key/not-hex")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	env := newServerEnv(t)

	health, err := env.client.Health()
	require.NoError(t, err)
	assert.True(t, health.Healthy)

	env.ledger.SetOffline(true)

	resp, err := http.Get(env.ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	health, err = env.client.Health()
	require.NoError(t, err)
	assert.False(t, health.Healthy)
	assert.False(t, health.Ledger)
	assert.True(t, health.Index)
	assert.True(t, health.Storage)
}

func TestServer_ReadinessAndDrain(t *testing.T) {
	env := newServerEnv(t)

	get := func(path string) int {
		resp, err := http.Get(env.ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("/livez"))
	assert.Equal(t, http.StatusOK, get("/readyz"))

	assert.Equal(t, http.StatusOK, get("/drain"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))

	assert.Equal(t, http.StatusOK, get("/undrain"))
	assert.Equal(t, http.StatusOK, get("/readyz"))
}
