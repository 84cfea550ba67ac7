package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
	q  *gen.Queries
}

// NewStore opens dsn. In-memory databases are pinned to one connection so
// every query sees the same database.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, q: gen.New(db)}, nil
}

// FileDSN builds the DSN used for on-disk databases.
func FileDSN(path string) string {
	return "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) Verifications() store.Verifications { return &verificationsRepo{q: s.q} }
func (s *Store) UploadSlots() store.UploadSlots     { return &uploadSlotsRepo{q: s.q} }
func (s *Store) MFAChallenges() store.MFAChallenges { return &mfaChallengesRepo{q: s.q} }
func (s *Store) AuditLogs() store.AuditLogs         { return &auditLogsRepo{q: s.q} }
func (s *Store) Outbox() store.Outbox               { return &outboxRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapUniqueViolation(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func toUnix(t time.Time) int64 { return t.UTC().UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }

func mapNullTimePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromUnix(n.Int64)
	return &t
}

func nullTime(t time.Time) sql.NullInt64 {
	return sql.NullInt64{Int64: toUnix(t), Valid: true}
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func encodeMap(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMap(s string) map[string]string {
	m := map[string]string{}
	_ = json.Unmarshal([]byte(s), &m)
	return m
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		Status:       domain.UserStatus(row.Status),
		CreatedAt:    fromUnix(row.CreatedAt),
		UpdatedAt:    fromUnix(row.UpdatedAt),
	}
}

func mapVerification(row gen.VerificationRequest) domain.VerificationRequest {
	return domain.VerificationRequest{
		ID:            row.ID,
		SubjectUserID: row.SubjectUserID,
		Status:        domain.VerificationStatus(row.Status),
		Assets: domain.VerificationAssets{
			FrontDocumentURL: row.FrontDocumentUrl,
			BackDocumentURL:  row.BackDocumentUrl,
			SelfieURL:        row.SelfieUrl,
		},
		DecisionReason:   mapNullString(row.DecisionReason),
		DecidedByAdminID: mapNullStringPtr(row.DecidedByAdminID),
		CreatedAt:        fromUnix(row.CreatedAt),
		SubmittedAt:      mapNullTimePtr(row.SubmittedAt),
		DecidedAt:        mapNullTimePtr(row.DecidedAt),
		UpdatedAt:        fromUnix(row.UpdatedAt),
	}
}

func mapUploadSlot(row gen.UploadSlot) domain.UploadSlot {
	return domain.UploadSlot{
		AssetKey:       row.AssetKey,
		Folder:         domain.UploadFolder(row.Folder),
		ContentType:    row.ContentType,
		PublicURL:      row.PublicUrl,
		IssuedToUserID: row.IssuedToUserID,
		ExpiresAt:      fromUnix(row.ExpiresAt),
		ConsumedAt:     mapNullTimePtr(row.ConsumedAt),
		CreatedAt:      fromUnix(row.CreatedAt),
	}
}

func mapChallenge(row gen.MfaChallenge) domain.MFAChallenge {
	return domain.MFAChallenge{
		ID:           row.ID,
		AdminUserID:  row.AdminUserID,
		CodeHash:     row.CodeHash,
		Digits:       int(row.Digits),
		IssuedAt:     fromUnix(row.IssuedAt),
		ExpiresAt:    fromUnix(row.ExpiresAt),
		ConsumedAt:   mapNullTimePtr(row.ConsumedAt),
		AttemptCount: int(row.AttemptCount),
	}
}

func mapAuditLog(row gen.AuditLog) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:           row.ID,
		ActorAdminID: mapNullStringPtr(row.ActorAdminID),
		Action:       row.Action,
		EntityType:   row.EntityType,
		EntityID:     row.EntityID,
		Metadata:     decodeMap(row.Metadata),
		CreatedAt:    fromUnix(row.CreatedAt),
	}
}

func mapNotification(row gen.NotificationOutbox) domain.Notification {
	return domain.Notification{
		ID:             row.ID,
		IdempotencyKey: row.IdempotencyKey,
		Recipient:      row.Recipient,
		Template:       row.Template,
		Data:           decodeMap(row.Data),
		Attempts:       int(row.Attempts),
		NextAttemptAt:  fromUnix(row.NextAttemptAt),
		SentAt:         mapNullTimePtr(row.SentAt),
		FailedAt:       mapNullTimePtr(row.FailedAt),
		LastError:      row.LastError,
		CreatedAt:      fromUnix(row.CreatedAt),
	}
}
