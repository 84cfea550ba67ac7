package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: gen.New(tx)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// The outer Store owns the connection.
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.q} }
func (t *txStore) Verifications() store.Verifications { return &verificationsRepo{q: t.q} }
func (t *txStore) UploadSlots() store.UploadSlots     { return &uploadSlotsRepo{q: t.q} }
func (t *txStore) MFAChallenges() store.MFAChallenges { return &mfaChallengesRepo{q: t.q} }
func (t *txStore) AuditLogs() store.AuditLogs         { return &auditLogsRepo{q: t.q} }
func (t *txStore) Outbox() store.Outbox               { return &outboxRepo{q: t.q} }
