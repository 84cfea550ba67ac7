package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/objstore"
)

// ObjectStorage is the blob store holding uploaded documents. pkg/objstore
// implements it over S3.
type ObjectStorage interface {
	// PresignPut returns a URL the client may PUT to until ttl elapses.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PublicURL(key string) string
	// Stat returns objstore.ErrNotFound when nothing was uploaded to key.
	Stat(ctx context.Context, key string) (objstore.ObjectInfo, error)
}

// Notifier delivers one rendered notification. Implementations must be
// safe to call again with the same notification.
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Poker wakes the dispatcher after new notifications are committed.
type Poker interface {
	Poke()
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c != nil {
		return c().UTC()
	}
	return time.Now().UTC()
}
