package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/core/telegram/netutil"
	"github.com/codexs/hirebot/internal/storage"
)

var (
	// ErrQueueClosed is returned once Close has been called.
	ErrQueueClosed = errors.New("notify: queue closed")
	// ErrQueueFull means the notification was dropped.
	ErrQueueFull = errors.New("notify: queue full")
)

// QueueOptions tune a Queue. Zero values pick defaults.
type QueueOptions struct {
	Size         int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent on one notification, retries
	// included.
	MaxDuration time.Duration
}

type job struct {
	ctx context.Context
	// event is "application" or "contact", logged as kind.
	event string
	id    string
	run   func(ctx context.Context) error
}

// Queue delivers notifications asynchronously so a slow sink never holds up
// the user's turn. Transient failures are retried with linear backoff.
type Queue struct {
	next Notifier
	opts QueueOptions
	jobs chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	errs   atomic.Uint64
}

var _ Notifier = (*Queue)(nil)

// NewQueue starts the workers. Call Close to drain them.
func NewQueue(next Notifier, opts QueueOptions) *Queue {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 30 * time.Second
	}
	q := &Queue{next: next, opts: opts, jobs: make(chan job, opts.Size)}
	q.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go q.worker()
	}
	return q
}

func (q *Queue) Name() string { return q.next.Name() }

// Failures reports how many notifications failed after every retry.
func (q *Queue) Failures() uint64 { return q.errs.Load() }

func (q *Queue) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	return q.enqueue(ctx, "application", ev.App.ID, func(ctx context.Context) error {
		return q.next.NotifyApplication(ctx, ev)
	})
}

func (q *Queue) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	return q.enqueue(ctx, "contact", "", func(ctx context.Context) error {
		return q.next.NotifyContact(ctx, msg)
	})
}

func (q *Queue) enqueue(ctx context.Context, event, id string, run func(context.Context) error) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	// The job outlives the turn that queued it but keeps its log metadata.
	j := job{ctx: context.WithoutCancel(ctx), event: event, id: id, run: run}
	select {
	case q.jobs <- j:
		return nil
	default:
		logger.Warn(ctx, "notify", "queue.full",
			slog.String("kind", event),
			slog.Int("size", q.opts.Size),
		)
		return ErrQueueFull
	}
}

// Close stops accepting work and waits until queued notifications finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.handle(j)
	}
}

func (q *Queue) handle(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, q.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := q.opts.MaxRetries + 1
	var err error
retry:
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = j.run(ctx); err == nil {
			if attempt > 1 {
				logger.Info(ctx, "notify", "queue.retry.success",
					slog.String("kind", j.event),
					slog.Int("attempt", attempt),
					slog.Duration("duration", logger.Took(start)),
				)
			}
			return
		}
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}
		delay := q.opts.RetryBackoff * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = errors.Join(err, ctx.Err())
			break retry
		case <-timer.C:
			logger.Debug(ctx, "notify", "queue.retry.backoff",
				slog.String("kind", j.event),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
			)
		}
	}

	q.errs.Add(1)
	attrs := []slog.Attr{
		slog.String("status", "fail"),
		slog.String("kind", j.event),
		slog.String("err", netutil.Redact(err)),
		slog.String("err_kind", netutil.Classify(err)),
		slog.Duration("duration", logger.Took(start)),
	}
	if j.id != "" {
		attrs = append(attrs, slog.String("application_id", j.id))
	}
	logger.Error(ctx, "notify", "queue.deliver", attrs...)
}
