package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/storage"
)

// idleEviction is how long a conversation may sit unused in memory. Its
// snapshot stays on disk and is recovered on the next event.
const idleEviction = 24 * time.Hour

// Sweeper removes stale state: old snapshots, idle in-memory sessions and
// empty rate limit windows.
type Sweeper struct {
	Sessions  storage.SessionStore
	Retention time.Duration
	Evict     func(idle time.Duration) int
	Prune     []func() int
}

// Sweep runs one pass and logs what it removed.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := time.Now()
	attrs := []slog.Attr{}
	removed, err := s.Sessions.CleanupOlderThan(ctx, s.Retention)
	if err != nil {
		logger.Error(ctx, "cleanup", "cleanup.snapshots",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
	attrs = append(attrs, slog.Int("snapshots", removed))
	if s.Evict != nil {
		attrs = append(attrs, slog.Int("evicted", s.Evict(idleEviction)))
	}
	pruned := 0
	for _, p := range s.Prune {
		pruned += p()
	}
	attrs = append(attrs,
		slog.Int("limiter_pruned", pruned),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
	)
	logger.Info(ctx, "cleanup", "cleanup.sweep", attrs...)
}

// RunSchedule sweeps on the cron schedule until ctx is done.
func (s *Sweeper) RunSchedule(ctx context.Context, spec string) error {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { s.Sweep(ctx) }); err != nil {
		return err
	}
	c.Start()
	logger.Info(ctx, "cleanup", "cleanup.scheduled", slog.String("schedule", spec))
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
