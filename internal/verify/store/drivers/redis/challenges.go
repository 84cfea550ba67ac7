// Package redis keeps MFA challenges in Redis so several verifyd replicas
// share one challenge per admin. Keys expire on their own shortly after the
// challenge does.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "mfa:challenge:"

// expiryGrace keeps an expired challenge around long enough for Verify to
// report it as expired rather than missing.
const expiryGrace = 15 * time.Minute

// Every script takes the challenge key and its expected id, and returns -1
// when the stored challenge was superseded or is gone. consumeScript
// returns -2 once attempt_count is past the limit in ARGV[3].
var (
	incrementScript = goredis.NewScript(`
if redis.call('HGET', KEYS[1], 'id') ~= ARGV[1] then
  return -1
end
return redis.call('HINCRBY', KEYS[1], 'attempt_count', 1)
`)

	consumeScript = goredis.NewScript(`
if redis.call('HGET', KEYS[1], 'id') ~= ARGV[1] then
  return -1
end
if redis.call('HGET', KEYS[1], 'consumed_at') then
  return 0
end
if tonumber(redis.call('HGET', KEYS[1], 'attempt_count') or '0') > tonumber(ARGV[3]) then
  return -2
end
redis.call('HSET', KEYS[1], 'consumed_at', ARGV[2])
return 1
`)

	deleteScript = goredis.NewScript(`
if redis.call('HGET', KEYS[1], 'id') == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)
)

// ChallengeStore implements store.MFAChallenges on a Redis hash per admin.
type ChallengeStore struct {
	rdb goredis.UniversalClient
}

var _ store.MFAChallenges = (*ChallengeStore)(nil)

func NewChallengeStore(rdb goredis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{rdb: rdb}
}

// Open connects to the Redis server at url (redis://...) and pings it.
func Open(ctx context.Context, url string) (*ChallengeStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &ChallengeStore{rdb: rdb}, nil
}

func (s *ChallengeStore) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *ChallengeStore) Close() error { return s.rdb.Close() }

func challengeKey(adminUserID string) string { return keyPrefix + adminUserID }

func (s *ChallengeStore) UpsertChallenge(ctx context.Context, c domain.MFAChallenge) error {
	key := challengeKey(c.AdminUserID)
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key, map[string]any{
			"id":            c.ID,
			"admin_user_id": c.AdminUserID,
			"code_hash":     c.CodeHash,
			"digits":        c.Digits,
			"issued_at":     c.IssuedAt.UnixNano(),
			"expires_at":    c.ExpiresAt.UnixNano(),
			"attempt_count": 0,
		})
		p.PExpireAt(ctx, key, c.ExpiresAt.Add(expiryGrace))
		return nil
	})
	return err
}

func (s *ChallengeStore) GetChallenge(ctx context.Context, adminUserID string) (domain.MFAChallenge, error) {
	fields, err := s.rdb.HGetAll(ctx, challengeKey(adminUserID)).Result()
	if err != nil {
		return domain.MFAChallenge{}, err
	}
	if len(fields) == 0 {
		return domain.MFAChallenge{}, store.ErrNotFound
	}
	return decodeChallenge(adminUserID, fields)
}

func (s *ChallengeStore) IncrementChallengeAttempts(ctx context.Context, adminUserID, challengeID string) (int, error) {
	n, err := incrementScript.Run(ctx, s.rdb, []string{challengeKey(adminUserID)}, challengeID).Int()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, store.ErrNotFound
	}
	return n, nil
}

func (s *ChallengeStore) ConsumeChallenge(ctx context.Context, adminUserID, challengeID string, now time.Time, maxAttempts int) error {
	n, err := consumeScript.Run(ctx, s.rdb, []string{challengeKey(adminUserID)}, challengeID, now.UnixNano(), maxAttempts).Int()
	if err != nil {
		return err
	}
	switch n {
	case 1:
		return nil
	case 0:
		return store.ErrConflict
	case -2:
		return store.ErrAttemptsExhausted
	default:
		return store.ErrNotFound
	}
}

func (s *ChallengeStore) DeleteChallenge(ctx context.Context, adminUserID, challengeID string) error {
	return deleteScript.Run(ctx, s.rdb, []string{challengeKey(adminUserID)}, challengeID).Err()
}

// DeleteExpiredChallenges is a no-op: keys carry their own TTL.
func (s *ChallengeStore) DeleteExpiredChallenges(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func decodeChallenge(adminUserID string, f map[string]string) (domain.MFAChallenge, error) {
	c := domain.MFAChallenge{
		ID:          f["id"],
		AdminUserID: adminUserID,
		CodeHash:    f["code_hash"],
	}

	var errs []error
	atoi := func(name string) int64 {
		v, err := strconv.ParseInt(f[name], 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", name, err))
		}
		return v
	}

	c.Digits = int(atoi("digits"))
	c.IssuedAt = time.Unix(0, atoi("issued_at")).UTC()
	c.ExpiresAt = time.Unix(0, atoi("expires_at")).UTC()
	c.AttemptCount = int(atoi("attempt_count"))
	if _, ok := f["consumed_at"]; ok {
		t := time.Unix(0, atoi("consumed_at")).UTC()
		c.ConsumedAt = &t
	}

	if err := errors.Join(errs...); err != nil {
		return domain.MFAChallenge{}, fmt.Errorf("redis: decode challenge: %w", err)
	}
	return c, nil
}
