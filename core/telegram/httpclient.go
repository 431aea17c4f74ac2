package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/core/telegram/netutil"
)

const (
	defaultClientTimeout = 30 * time.Second
	defaultHeaderTimeout = 5 * time.Second
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 2 * time.Second
)

// errBodyConsumed means a failed request cannot be replayed.
var errBodyConsumed = errors.New("telegram: request body cannot be replayed")

// ClientOptions tunes BuildHTTPClient. Zero values pick the defaults above;
// a negative MaxRetries turns retries off.
type ClientOptions struct {
	Timeout         time.Duration
	ResponseTimeout time.Duration
	MaxRetries      int
	Backoff         time.Duration
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.Timeout <= 0 {
		o.Timeout = defaultClientTimeout
	}
	if o.ResponseTimeout <= 0 {
		o.ResponseTimeout = defaultHeaderTimeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = defaultRetryAttempts
	} else if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Backoff <= 0 {
		o.Backoff = defaultRetryBackoff
	}
	return o
}

// BuildHTTPClient returns the client shared by the Bot API, the webhook
// notifier and the AI client. Dial and timeout failures are retried; HTTP
// error replies are returned as they are.
func BuildHTTPClient(opts ClientOptions) *http.Client {
	opts = opts.withDefaults()
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &retryTransport{
			base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          64,
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: opts.ResponseTimeout,
				ExpectContinueTimeout: time.Second,
			},
			maxRetries: opts.MaxRetries,
			backoff:    opts.Backoff,
		},
	}
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	for attempt := 1; err != nil && attempt <= t.maxRetries && netutil.ShouldRetry(err); attempt++ {
		delay := t.backoff * time.Duration(attempt)
		logger.TG.Debug("http.retry",
			slog.String("host", req.URL.Host),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("err_kind", netutil.Classify(err)),
		)
		if waitErr := sleep(req.Context(), delay); waitErr != nil {
			return nil, waitErr
		}
		next, replayErr := replay(req)
		if replayErr != nil {
			return nil, errors.Join(err, replayErr)
		}
		resp, err = base.RoundTrip(next)
	}
	return resp, err
}

// replay clones req with a fresh body.
func replay(req *http.Request) (*http.Request, error) {
	next := req.Clone(req.Context())
	switch {
	case req.Body == nil || req.Body == http.NoBody:
	case req.GetBody != nil:
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		next.Body = body
	default:
		return nil, errBodyConsumed
	}
	return next, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
