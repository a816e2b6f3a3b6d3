package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/certchain/certificate-registry-backend/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS certificate_index (
	application_cert_id TEXT PRIMARY KEY,
	record_key          TEXT UNIQUE,
	transaction_hash    TEXT,
	state               TEXT NOT NULL,
	student_name        TEXT NOT NULL,
	course_name         TEXT NOT NULL,
	grade               TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	content_id          TEXT NOT NULL,
	revoked             BOOLEAN NOT NULL DEFAULT FALSE,
	created_at          TIMESTAMPTZ NOT NULL,
	issued_at           TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS certificate_index_record_key ON certificate_index (record_key);
`

// PostgresIndex persists the off-chain mirror in PostgreSQL.
type PostgresIndex struct {
	db  *sql.DB
	log *slog.Logger
}

// NewPostgresIndex opens a connection pool for the given DSN and ensures the
// mirror table exists.
func NewPostgresIndex(ctx context.Context, dsn string, log *slog.Logger) (*PostgresIndex, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping index database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure index schema: %w", err)
	}

	return &PostgresIndex{db: db, log: log}, nil
}

// Close releases the connection pool.
func (p *PostgresIndex) Close() error {
	return p.db.Close()
}

// Upsert inserts or replaces a row keyed by application certificate ID.
func (p *PostgresIndex) Upsert(ctx context.Context, record *interfaces.IndexRecord) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO certificate_index (
			application_cert_id, record_key, transaction_hash, state,
			student_name, course_name, grade, description, content_id,
			revoked, created_at, issued_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (application_cert_id) DO UPDATE SET
			record_key = EXCLUDED.record_key,
			transaction_hash = EXCLUDED.transaction_hash,
			state = EXCLUDED.state,
			student_name = EXCLUDED.student_name,
			course_name = EXCLUDED.course_name,
			grade = EXCLUDED.grade,
			description = EXCLUDED.description,
			content_id = EXCLUDED.content_id,
			revoked = EXCLUDED.revoked,
			issued_at = EXCLUDED.issued_at`,
		string(record.ApplicationCertID),
		nullKey(record.RecordKey),
		nullHash(record.TransactionHash),
		string(record.State),
		record.StudentName,
		record.CourseName,
		record.Grade,
		record.Description,
		record.ContentID.String(),
		record.Revoked,
		record.CreatedAt,
		nullTime(record.IssuedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert index record: %w", err)
	}
	return nil
}

// FindByApplicationID returns the row for an application certificate ID.
func (p *PostgresIndex) FindByApplicationID(ctx context.Context, id interfaces.ApplicationCertID) (*interfaces.IndexRecord, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT application_cert_id, record_key, transaction_hash, state,
			student_name, course_name, grade, description, content_id,
			revoked, created_at, issued_at
		FROM certificate_index WHERE application_cert_id = $1`, string(id))
	return scanRecord(row, "find index record by application id")
}

// FindByRecordKey returns the row referencing a ledger record key.
func (p *PostgresIndex) FindByRecordKey(ctx context.Context, key interfaces.RecordKey) (*interfaces.IndexRecord, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT application_cert_id, record_key, transaction_hash, state,
			student_name, course_name, grade, description, content_id,
			revoked, created_at, issued_at
		FROM certificate_index WHERE record_key = $1`, key.String())
	return scanRecord(row, "find index record by record key")
}

// Available checks database connectivity.
func (p *PostgresIndex) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.db.PingContext(ctx); err != nil {
		p.log.Debug("Index database unreachable", "err", err)
		return false
	}
	return true
}

func scanRecord(row *sql.Row, op string) (*interfaces.IndexRecord, error) {
	var (
		appID     string
		recordKey sql.NullString
		txHash    sql.NullString
		state     string
		contentID string
		issuedAt  sql.NullTime
	)
	record := &interfaces.IndexRecord{}

	err := row.Scan(
		&appID, &recordKey, &txHash, &state,
		&record.StudentName, &record.CourseName, &record.Grade, &record.Description,
		&contentID, &record.Revoked, &record.CreatedAt, &issuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record.ApplicationCertID = interfaces.ApplicationCertID(appID)
	record.State = interfaces.LifecycleState(state)
	record.ContentID = interfaces.ContentID(contentID)

	if recordKey.Valid {
		key, err := interfaces.NewRecordKeyFromHex(recordKey.String)
		if err != nil {
			return nil, fmt.Errorf("%s: malformed record key: %w", op, err)
		}
		record.RecordKey = &key
	}
	if txHash.Valid {
		hash, err := interfaces.NewTxHashFromHex(txHash.String)
		if err != nil {
			return nil, fmt.Errorf("%s: malformed transaction hash: %w", op, err)
		}
		record.TransactionHash = &hash
	}
	if issuedAt.Valid {
		record.IssuedAt = &issuedAt.Time
	}
	return record, nil
}

func nullKey(key *interfaces.RecordKey) sql.NullString {
	if key == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: key.String(), Valid: true}
}

func nullHash(hash *interfaces.TxHash) sql.NullString {
	if hash == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: hash.String(), Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
