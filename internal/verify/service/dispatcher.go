package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
)

const (
	DefaultDispatchInterval = 5 * time.Second
	DefaultDispatchBatch    = 20
	DefaultSendTimeout      = 10 * time.Second
	DefaultDispatchLease    = time.Minute
	DefaultDispatchAttempts = 5
	DefaultBaseBackoff      = 30 * time.Second
	maxBackoff              = time.Hour
)

// Dispatcher drains the notification outbox. Delivery is at-least-once:
// a row is marked sent only after the notifier returns, and a crash in
// between re-sends it once the lease runs out.
type Dispatcher struct {
	Store    store.Store
	Notifier Notifier
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	Interval    time.Duration
	BatchSize   int
	SendTimeout time.Duration
	Lease       time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	Now         func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
	pokeCh chan struct{}
}

// NewDispatcher returns a dispatcher with default tuning. If interval is 0
// or negative, defaults to DefaultDispatchInterval.
func NewDispatcher(st store.Store, n Notifier, logger *slog.Logger, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultDispatchInterval
	}
	return &Dispatcher{
		Store:       st,
		Notifier:    n,
		Logger:      logger,
		Interval:    interval,
		BatchSize:   DefaultDispatchBatch,
		SendTimeout: DefaultSendTimeout,
		Lease:       DefaultDispatchLease,
		MaxAttempts: DefaultDispatchAttempts,
		BaseBackoff: DefaultBaseBackoff,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		pokeCh:      make(chan struct{}, 1),
	}
}

// Start runs the worker in the background until Stop.
func (d *Dispatcher) Start() {
	go d.run()
	d.Logger.Info("notification dispatcher started", "interval", d.Interval)
}

// Stop waits for an in-flight batch to finish.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
	d.Logger.Info("notification dispatcher stopped")
}

// Poke requests an immediate drain. It never blocks.
func (d *Dispatcher) Poke() {
	select {
	case d.pokeCh <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	d.drain()
	for {
		select {
		case <-ticker.C:
			d.drain()
		case <-d.pokeCh:
			d.drain()
		case <-d.stopCh:
			return
		}
	}
}

// drain keeps dispatching while full batches come back.
func (d *Dispatcher) drain() {
	ctx := context.Background()
	for {
		n, err := d.DispatchDue(ctx)
		if err != nil {
			d.Logger.Error("failed to dispatch notifications", "error", err)
			return
		}
		if n < d.BatchSize {
			return
		}
		select {
		case <-d.stopCh:
			return
		default:
		}
	}
}

// DispatchDue claims one batch of due notifications and attempts each. It
// returns how many rows were claimed.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	now := clock(d.Now).now()
	batch, err := d.Store.Outbox().ClaimDueNotifications(ctx, now, now.Add(d.Lease), d.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to claim notifications: %w", err)
	}

	var errs []error
	for _, n := range batch {
		if err := d.deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return len(batch), errors.Join(errs...)
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.SendTimeout)
	sendErr := d.Notifier.Send(sendCtx, n)
	cancel()

	now := clock(d.Now).now()
	logger := d.Logger.With("notification_id", n.ID, "template", n.Template)

	if sendErr == nil {
		d.Metrics.IncNotification(n.Template, "sent")
		if err := d.Store.Outbox().MarkNotificationSent(ctx, n.ID, now); err != nil {
			return fmt.Errorf("failed to mark notification %s sent: %w", n.ID, err)
		}
		logger.Debug("notification sent")
		return nil
	}

	attempts := n.Attempts + 1
	if attempts >= d.MaxAttempts {
		d.Metrics.IncNotification(n.Template, "failed")
		logger.Error("notification failed permanently", "attempts", attempts, "error", sendErr)
		if err := d.Store.Outbox().MarkNotificationFailed(ctx, n.ID, attempts, now, sendErr.Error()); err != nil {
			return fmt.Errorf("failed to mark notification %s failed: %w", n.ID, err)
		}
		return nil
	}

	next := now.Add(Backoff(d.BaseBackoff, attempts))
	d.Metrics.IncNotification(n.Template, "retry")
	logger.Warn("notification delivery failed, will retry",
		"attempts", attempts,
		"next_attempt_at", next,
		"error", sendErr,
	)
	if err := d.Store.Outbox().MarkNotificationRetry(ctx, n.ID, attempts, next, sendErr.Error()); err != nil {
		return fmt.Errorf("failed to reschedule notification %s: %w", n.ID, err)
	}
	return nil
}

// Backoff returns base * 2^(attempt-1), capped at one hour.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultBaseBackoff
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return min(d, maxBackoff)
}
