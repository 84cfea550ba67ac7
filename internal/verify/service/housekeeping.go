package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/store"
)

const (
	DefaultHousekeepingInterval = time.Hour
	DefaultChallengeRetention   = 24 * time.Hour
	DefaultSlotRetention        = 24 * time.Hour
	DefaultSentRetention        = 30 * 24 * time.Hour
)

// HousekeepingService periodically deletes records that are no longer
// useful: old MFA challenges, upload slots that were never used, and
// delivered outbox rows. Audit entries are never touched.
type HousekeepingService struct {
	Store      store.Store
	Challenges store.MFAChallenges
	Logger     *slog.Logger
	Interval   time.Duration

	ChallengeRetention time.Duration
	SlotRetention      time.Duration
	SentRetention      time.Duration
	Now                func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, challenges store.MFAChallenges, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	if challenges == nil {
		challenges = st.MFAChallenges()
	}

	return &HousekeepingService{
		Store:              st,
		Challenges:         challenges,
		Logger:             logger,
		Interval:           interval,
		ChallengeRetention: DefaultChallengeRetention,
		SlotRetention:      DefaultSlotRetention,
		SentRetention:      DefaultSentRetention,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass. Each deletion is independent; a failure in one
// does not stop the others. It returns the number of rows removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	now := clock(s.Now).now()
	s.Logger.Debug("starting housekeeping cleanup")

	var total int64
	run := func(what string, fn func() (int64, error)) {
		n, err := fn()
		if err != nil {
			s.Logger.Error("housekeeping step failed", "step", what, "error", err)
			return
		}
		total += n
		s.Logger.Debug("housekeeping step done", "step", what, "deleted", n)
	}

	run("mfa_challenges", func() (int64, error) {
		return s.Challenges.DeleteExpiredChallenges(ctx, now.Add(-s.ChallengeRetention))
	})
	run("upload_slots", func() (int64, error) {
		return s.Store.UploadSlots().DeleteStaleUploadSlots(ctx, now.Add(-s.SlotRetention))
	})
	run("notification_outbox", func() (int64, error) {
		return s.Store.Outbox().DeleteSentNotificationsBefore(ctx, now.Add(-s.SentRetention))
	})

	s.Logger.Info("housekeeping cleanup completed", "deleted", total)
	return total
}
