package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/certchain/certificate-registry-backend/index"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/certchain/certificate-registry-backend/registry"
	"github.com/certchain/certificate-registry-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testPDF  = bytes.Repeat([]byte("%PDF-1.4 certificate "), 10)
	testMeta = UploadMetadata{
		StudentName: "Ada Lovelace",
		CourseName:  "Distributed Systems",
		Grade:       "A",
		Description: "Honors track",
	}
)

func mustActor(t *testing.T, hexAddr string) interfaces.ActorAddress {
	t.Helper()
	actor, err := interfaces.NewActorAddressFromHex(hexAddr)
	require.NoError(t, err)
	return actor
}

type testEnv struct {
	core   *RegistryCore
	ledger *registry.SimulatedLedger
	index  *index.MemoryIndex
	owner  interfaces.ActorAddress
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	owner := mustActor(t, "0x1111111111111111111111111111111111111111")
	ledger := registry.NewSimulatedLedger(owner)
	idx := index.NewMemoryIndex()
	store, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	c, err := New(Config{
		Ledger:         ledger,
		Store:          store,
		Index:          idx,
		Log:            logger,
		ConfirmTimeout: 2 * time.Second,
		PollInterval:   5 * time.Millisecond,
	})
	require.NoError(t, err)

	return &testEnv{core: c, ledger: ledger, index: idx, owner: owner}
}

func (e *testEnv) upload(t *testing.T) *interfaces.IndexRecord {
	t.Helper()
	row, err := e.core.UploadContent(context.Background(), testPDF, "application/pdf", testMeta)
	require.NoError(t, err)
	return row
}

func (e *testEnv) issue(t *testing.T, id interfaces.ApplicationCertID) *IssueResult {
	t.Helper()
	result, err := e.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: id,
		IssuerName:        "CertChain University",
	})
	require.NoError(t, err)
	return result
}

func TestUploadContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("valid upload creates pending row", func(t *testing.T) {
		row := env.upload(t)
		assert.Equal(t, interfaces.StatePending, row.State)
		assert.Nil(t, row.RecordKey)
		assert.NotEmpty(t, row.ContentID)
		assert.Contains(t, row.ApplicationCertID.String(), "CERT-")

		stored, err := env.index.FindByApplicationID(ctx, row.ApplicationCertID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", stored.StudentName)
	})

	t.Run("rejects wrong media type", func(t *testing.T) {
		_, err := env.core.UploadContent(ctx, testPDF, "image/png", testMeta)
		assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
	})

	t.Run("rejects oversized document", func(t *testing.T) {
		huge := make([]byte, maxContentSize+1)
		_, err := env.core.UploadContent(ctx, huge, "application/pdf", testMeta)
		assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := env.core.UploadContent(ctx, nil, "application/pdf", testMeta)
		assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
	})

	t.Run("rejects missing metadata", func(t *testing.T) {
		_, err := env.core.UploadContent(ctx, testPDF, "application/pdf", UploadMetadata{CourseName: "X"})
		assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
	})
}

func TestUploadContent_IDGenerationExhausted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.core.newID = func() interfaces.ApplicationCertID { return "CERT-collision" }
	require.NoError(t, env.index.Upsert(ctx, &interfaces.IndexRecord{
		ApplicationCertID: "CERT-collision",
		State:             interfaces.StatePending,
		ContentID:         "QmX",
		CreatedAt:         time.Now(),
	}))

	_, err := env.core.UploadContent(ctx, testPDF, "application/pdf", testMeta)
	assert.ErrorIs(t, err, interfaces.ErrIDGenerationExhausted)
}

func TestIssue_ConfirmsAndVerifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	row := env.upload(t)
	result := env.issue(t, row.ApplicationCertID)

	assert.False(t, result.RecordKey.IsZero())
	assert.False(t, result.TransactionHash.IsZero())

	stored, err := env.index.FindByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StateIssued, stored.State)
	require.NotNil(t, stored.RecordKey)
	require.NotNil(t, stored.TransactionHash)
	require.NotNil(t, stored.IssuedAt)

	verdict, err := env.core.VerifyByKey(ctx, result.RecordKey)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, "Ada Lovelace", verdict.StudentName)
	assert.Equal(t, "CertChain University", verdict.IssuerName)
	assert.Equal(t, "A", verdict.Grade)
	assert.Equal(t, row.ApplicationCertID.String(), verdict.ApplicationCertID)
	assert.Equal(t, result.TransactionHash.String(), verdict.TransactionHash)

	byID, err := env.core.VerifyByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.True(t, byID.Valid)

	byTx, err := env.core.VerifyByTransaction(ctx, result.TransactionHash)
	require.NoError(t, err)
	assert.True(t, byTx.Valid)
	assert.Equal(t, result.RecordKey.String(), byTx.RecordKey)
}

func TestIssue_PendingIsNeverValid(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)

	verdict, err := env.core.VerifyByApplicationID(context.Background(), row.ApplicationCertID)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonNotIssued, verdict.Reason)
	assert.Equal(t, row.ApplicationCertID.String(), verdict.ApplicationCertID)
}

func TestIssue_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)

	env.ledger.SetActor(mustActor(t, "0x2222222222222222222222222222222222222222"))

	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: row.ApplicationCertID,
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrNotAuthorized)

	stored, err := env.index.FindByApplicationID(context.Background(), row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatePending, stored.State)
}

func TestIssue_AlreadyIssued(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)
	env.issue(t, row.ApplicationCertID)

	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: row.ApplicationCertID,
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)
}

func TestIssue_DuplicateRecordKey(t *testing.T) {
	env := newTestEnv(t)

	// The same fields, content, and nonce derive the same record key; the
	// ledger must reject the second issuance instead of overwriting.
	env.core.newNonce = func() uint64 { return 42 }

	first := env.upload(t)
	env.issue(t, first.ApplicationCertID)

	second := env.upload(t)
	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: second.ApplicationCertID,
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)
}

func TestIssue_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)

	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: row.ApplicationCertID,
	})
	assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
}

func TestIssue_UnknownApplicationID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: "CERT-missing",
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestIssue_AmbiguousTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.core.confirmTimeout = 30 * time.Millisecond
	env.core.newNonce = func() uint64 { return 7 }

	row := env.upload(t)
	env.ledger.HoldConfirmations(true)

	_, err := env.core.Issue(context.Background(), IssueParams{
		ApplicationCertID: row.ApplicationCertID,
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrConfirmationAmbiguous)

	// The index must not claim issuance for an unconfirmed transaction.
	stored, err := env.index.FindByApplicationID(context.Background(), row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatePending, stored.State)

	// Recovery: the key is deterministic, so once the transaction lands the
	// record is findable without resubmitting.
	env.ledger.ConfirmPending()
	expectedKey, err := interfaces.ComputeRecordKey(
		"CertChain University", testMeta.StudentName, testMeta.CourseName, row.ContentID, 7)
	require.NoError(t, err)

	verdict, err := env.core.VerifyByKey(context.Background(), expectedKey)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}

func TestIssue_LateConfirmationWithinWindow(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)

	env.ledger.HoldConfirmations(true)
	go func() {
		time.Sleep(30 * time.Millisecond)
		env.ledger.ConfirmPending()
	}()

	result := env.issue(t, row.ApplicationCertID)
	assert.False(t, result.RecordKey.IsZero())

	stored, err := env.index.FindByApplicationID(context.Background(), row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StateIssued, stored.State)
}

func TestIssue_ConcurrentSameID(t *testing.T) {
	env := newTestEnv(t)
	row := env.upload(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = env.core.Issue(context.Background(), IssueParams{
				ApplicationCertID: row.ApplicationCertID,
				IssuerName:        "CertChain University",
			})
		}(i)
	}
	wg.Wait()

	// Exactly one issuance wins; the loser observes the issued row.
	var succeeded, duplicate int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, interfaces.ErrDuplicateKey):
			duplicate++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicate)
}

func TestAttachTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)

	// A browser wallet submits the issuance itself and reports the hash.
	txHash, err := env.ledger.SubmitIssuance(ctx, interfaces.IssuanceRequest{
		IssuerName:  "CertChain University",
		StudentName: testMeta.StudentName,
		CourseName:  testMeta.CourseName,
		ContentID:   row.ContentID,
		Nonce:       99,
	})
	require.NoError(t, err)

	result, err := env.core.AttachTransaction(ctx, row.ApplicationCertID, txHash)
	require.NoError(t, err)
	assert.False(t, result.RecordKey.IsZero())

	stored, err := env.index.FindByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StateIssued, stored.State)

	// Re-reporting the same transaction is idempotent.
	again, err := env.core.AttachTransaction(ctx, row.ApplicationCertID, txHash)
	require.NoError(t, err)
	assert.Equal(t, result.RecordKey, again.RecordKey)
}

func TestAttachTransaction_WrongDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)

	txHash, err := env.ledger.SubmitIssuance(ctx, interfaces.IssuanceRequest{
		IssuerName:  "CertChain University",
		StudentName: "Someone Else",
		CourseName:  "Another Course",
		ContentID:   "QmUnrelatedDocument",
		Nonce:       1,
	})
	require.NoError(t, err)

	_, err = env.core.AttachTransaction(ctx, row.ApplicationCertID, txHash)
	assert.ErrorIs(t, err, interfaces.ErrInvalidContent)
}

func TestAttachTransaction_UnknownTx(t *testing.T) {
	env := newTestEnv(t)
	env.core.confirmTimeout = 30 * time.Millisecond
	row := env.upload(t)

	bogus, err := interfaces.NewTxHashFromHex("0xdeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddead")
	require.NoError(t, err)

	_, err = env.core.AttachTransaction(context.Background(), row.ApplicationCertID, bogus)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)
	result := env.issue(t, row.ApplicationCertID)

	txHash, err := env.core.Revoke(ctx, result.RecordKey)
	require.NoError(t, err)
	assert.False(t, txHash.IsZero())

	verdict, err := env.core.VerifyByKey(ctx, result.RecordKey)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonRevoked, verdict.Reason)

	stored, err := env.index.FindByRecordKey(ctx, result.RecordKey)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)

	// Revoking again is a no-op, not an error.
	noop, err := env.core.Revoke(ctx, result.RecordKey)
	require.NoError(t, err)
	assert.True(t, noop.IsZero())
}

func TestRevoke_IssuerOnlyOwnRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	issuerA := mustActor(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	issuerB := mustActor(t, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	_, err := env.ledger.AuthorizeIssuer(ctx, issuerA)
	require.NoError(t, err)
	_, err = env.ledger.AuthorizeIssuer(ctx, issuerB)
	require.NoError(t, err)

	row := env.upload(t)
	env.ledger.SetActor(issuerA)
	result := env.issue(t, row.ApplicationCertID)

	// A different issuer cannot revoke someone else's record.
	env.ledger.SetActor(issuerB)
	_, err = env.core.Revoke(ctx, result.RecordKey)
	assert.ErrorIs(t, err, interfaces.ErrNotAuthorized)

	// The owner can revoke anything.
	env.ledger.SetActor(env.owner)
	_, err = env.core.Revoke(ctx, result.RecordKey)
	require.NoError(t, err)
}

func TestRevoke_UnknownKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.core.Revoke(context.Background(), interfaces.RecordKey{0x01})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestVerifyByKey_NotFound(t *testing.T) {
	env := newTestEnv(t)

	verdict, err := env.core.VerifyByKey(context.Background(), interfaces.RecordKey{0x02})
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonNotFound, verdict.Reason)
}

func TestVerify_IndexAheadOfLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)

	// Force an issued mirror row whose record key the ledger has never seen.
	phantomKey, err := interfaces.NewRecordKeyFromHex(
		"0xfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeedfeed")
	require.NoError(t, err)
	row.State = interfaces.StateIssued
	row.RecordKey = &phantomKey
	require.NoError(t, env.index.Upsert(ctx, row))

	verdict, err := env.core.VerifyByKey(ctx, phantomKey)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonNotFound, verdict.Reason)

	verdict, err = env.core.VerifyByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonNotFound, verdict.Reason)
}

func TestVerifyByApplicationID_Unknown(t *testing.T) {
	env := newTestEnv(t)

	verdict, err := env.core.VerifyByApplicationID(context.Background(), "CERT-missing")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonUnknownID, verdict.Reason)
}

func TestVerifyByTransaction_Unknown(t *testing.T) {
	env := newTestEnv(t)

	bogus, err := interfaces.NewTxHashFromHex("0xdeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddeaddead")
	require.NoError(t, err)

	verdict, err := env.core.VerifyByTransaction(context.Background(), bogus)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonUnknownTx, verdict.Reason)
}

func TestVerifyByTransaction_Unconfirmed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)

	env.ledger.HoldConfirmations(true)
	txHash, err := env.ledger.SubmitIssuance(ctx, interfaces.IssuanceRequest{
		IssuerName:  "CertChain University",
		StudentName: testMeta.StudentName,
		CourseName:  testMeta.CourseName,
		ContentID:   row.ContentID,
		Nonce:       5,
	})
	require.NoError(t, err)

	verdict, err := env.core.VerifyByTransaction(ctx, txHash)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, reasonTxPending, verdict.Reason)
}

func TestContentByApplicationID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	row := env.upload(t)

	data, contentID, err := env.core.ContentByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, testPDF, data)
	assert.Equal(t, row.ContentID, contentID)

	_, _, err = env.core.ContentByApplicationID(ctx, "CERT-missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

// newMockLedgerEnv builds a core over a scripted ledger for error paths the
// simulated ledger cannot produce mid-call.
func newMockLedgerEnv(t *testing.T, ledger *registry.MockLedger) (*RegistryCore, *index.MemoryIndex) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	idx := index.NewMemoryIndex()
	store, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	c, err := New(Config{
		Ledger:         ledger,
		Store:          store,
		Index:          idx,
		Log:            logger,
		ConfirmTimeout: 50 * time.Millisecond,
		PollInterval:   5 * time.Millisecond,
	})
	require.NoError(t, err)
	return c, idx
}

func TestIssue_SubmitLedgerUnavailable(t *testing.T) {
	ledger := new(registry.MockLedger)
	c, idx := newMockLedgerEnv(t, ledger)
	ctx := context.Background()

	row, err := c.UploadContent(ctx, testPDF, "application/pdf", testMeta)
	require.NoError(t, err)

	actor := mustActor(t, "0x2222222222222222222222222222222222222222")
	ledger.On("SignerAddress").Return(actor)
	ledger.On("IsAuthorized", mock.Anything, actor).Return(true, nil)
	ledger.On("SubmitIssuance", mock.Anything, mock.Anything).
		Return(interfaces.TxHash{}, interfaces.ErrLedgerUnavailable)

	_, err = c.Issue(ctx, IssueParams{
		ApplicationCertID: row.ApplicationCertID,
		IssuerName:        "CertChain University",
	})
	assert.ErrorIs(t, err, interfaces.ErrLedgerUnavailable)

	stored, err := idx.FindByApplicationID(ctx, row.ApplicationCertID)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatePending, stored.State)
	ledger.AssertExpectations(t)
}

func TestVerifyByKey_LedgerUnavailable(t *testing.T) {
	ledger := new(registry.MockLedger)
	c, _ := newMockLedgerEnv(t, ledger)

	key, err := interfaces.NewRecordKeyFromHex(
		"0xabababababababababababababababababababababababababababababababab")
	require.NoError(t, err)
	ledger.On("QueryByKey", mock.Anything, key).Return(nil, interfaces.ErrLedgerUnavailable)

	_, err = c.VerifyByKey(context.Background(), key)
	assert.ErrorIs(t, err, interfaces.ErrLedgerUnavailable)
	ledger.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	health := env.core.Health(ctx)
	assert.True(t, health.Healthy())

	env.ledger.SetOffline(true)
	health = env.core.Health(ctx)
	assert.False(t, health.Ledger)
	assert.True(t, health.Index)
	assert.True(t, health.Store)
	assert.False(t, health.Healthy())
}
