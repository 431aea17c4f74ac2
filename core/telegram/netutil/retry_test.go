package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestShouldRetry(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"dial", dial, true},
		{"wrapped dial", &url.Error{Op: "Post", URL: "https://x", Err: dial}, true},
		{"server error", &StatusError{Code: 502, URL: "https://x"}, true},
		{"flood", tele.FloodError{RetryAfter: 3}, true},
		{"bad request", &StatusError{Code: 400, URL: "https://x"}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldRetry(tc.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "timeout", Classify(fmt.Errorf("send: %w", context.DeadlineExceeded)))
	assert.Equal(t, "dns", Classify(&net.DNSError{Err: "no such host", Name: "x"}))
	assert.Equal(t, "dial", Classify(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.Equal(t, "http_5xx", Classify(&StatusError{Code: 503}))
	assert.Equal(t, "http_4xx", Classify(errors.New("telegram: chat not found (400)")))
	assert.Equal(t, "unknown", Classify(errors.New("boom")))
}

func TestRedact(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AbC-dEf_9/sendMessage": EOF`)
	assert.Equal(t, `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF`, Redact(err))
	assert.Equal(t, "", Redact(nil))
}
