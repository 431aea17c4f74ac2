package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.Send("send.text", nil, 10*time.Millisecond)
	r.Send("send.text", errors.New("boom"), time.Millisecond)
	r.Finalize("application", errors.New("disk full"))
	r.Finalize("application", nil)
	r.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.sendsTotal.WithLabelValues("send.text", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sendsTotal.WithLabelValues("send.text", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.finalizeTotal.WithLabelValues("application", "persist_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.finalizeTotal.WithLabelValues("application", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rateLimitedTotal))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Event("text", "IDLE")
		r.Send("send.text", nil, 0)
		r.Notify("webhook", nil)
		r.AI("replied", time.Second)
	})
}
