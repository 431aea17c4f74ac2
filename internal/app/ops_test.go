package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/report"
	"github.com/codexs/hirebot/internal/storage"
)

func TestOpsRouter(t *testing.T) {
	dir := t.TempDir()
	records, err := storage.NewJSONLRecordLog(dir)
	require.NoError(t, err)
	sessions, err := storage.NewFileSessionStore(dir + "/sessions")
	require.NoError(t, err)
	require.NoError(t, records.AppendApplication(context.Background(), &storage.Application{
		ID:          "APP-1",
		SubmittedAt: time.Now(),
		Language:    i18n.EN,
		Applicant:   storage.Applicant{TelegramID: 5},
		VoiceFileID: "v",
	}))

	reg := prometheus.NewRegistry()
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "hirebot_test_total", Help: "test"})
	reg.MustRegister(hits)
	hits.Inc()

	r := OpsRouter(OpsOptions{
		Reporter: report.New(records, sessions),
		Gatherer: reg,
		Active:   func() int { return 3 },
		Start:    time.Now(),
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	health := get("/healthz")
	require.Equal(t, http.StatusOK, health.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["active_sessions"])

	metrics := get("/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "hirebot_test_total 1")

	stats := get("/stats")
	require.Equal(t, http.StatusOK, stats.Code)
	var totals report.Totals
	require.NoError(t, json.Unmarshal(stats.Body.Bytes(), &totals))
	assert.Equal(t, 1, totals.Applications)
	assert.Equal(t, 1, totals.WithVoice)

	assert.Equal(t, http.StatusNotFound, get("/nope").Code)
}

func TestOpsStatsWithoutReporter(t *testing.T) {
	r := OpsRouter(OpsOptions{Start: time.Now()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
