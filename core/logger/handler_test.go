package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureHandler(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{level: slog.LevelDebug, writer: aw, format: format})
	return slog.New(h), func() string {
		if err := aw.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		return strings.TrimSpace(buf.String())
	}
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, out := captureHandler(t, formatKV)
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "flow"), slog.LevelInfo, "answer.saved",
		slog.String("status", "OK"),
		slog.String("question_key", "full_name"),
		slog.Duration("duration", 1500*time.Microsecond),
	)

	line := out()
	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=flow", "event=answer.saved", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
	if !strings.Contains(line, "duration_ms=2") {
		t.Fatalf("expected duration in ms, got %s", line)
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, out := captureHandler(t, formatJSON)
	ctx := WithRID(Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)

	LogEvent(ctx, log.With("component", "finalize"), slog.LevelError, "record.append",
		slog.String("status", "fail"),
		slog.Any("err", errors.New("disk full")),
		slog.String("application_id", "APP-1A2B3C4D"),
		slog.String("flow", "CONFIRM"),
	)

	line := out()
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"finalize"`, `"event":"record.append"`, `"status":"fail"`, `"rid":"rid-json"`,
		`"user_id":22`, `"flow":"CONFIRM"`, `"application_id":"APP-1A2B3C4D"`, `"err":"disk full"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	kv, kvOut := captureHandler(t, formatKV)
	js, jsOut := captureHandler(t, formatJSON)
	ctx := WithRID(Background(), "123:456:789")

	LogEvent(ctx, kv, slog.LevelInfo, "rid.test")
	LogEvent(ctx, js, slog.LevelInfo, "rid.test")

	kvLine, jsLine := kvOut(), jsOut()
	if !strings.Contains(kvLine, "rid=3f.co.lx") || strings.Contains(kvLine, "rid_full=") {
		t.Fatalf("expected compact rid without rid_full, got %s", kvLine)
	}
	if !strings.Contains(jsLine, `"rid":"3f.co.lx"`) || !strings.Contains(jsLine, `"rid_full":"123:456:789"`) {
		t.Fatalf("expected compact rid and rid_full in JSON, got %s", jsLine)
	}
	if !strings.Contains(jsLine, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano in JSON output, got %s", jsLine)
	}
}

func TestStructuredHandlerGroupsAndDefaults(t *testing.T) {
	log, out := captureHandler(t, formatKV)
	log.WithGroup("ai").With(slog.String("model", "gpt-4o-mini")).Info("reply",
		slog.Group("usage", slog.Int("tokens", 120)),
		slog.String("empty", "  "),
		slog.String("outcome", "bogus"),
	)

	line := out()
	for _, want := range []string{"component=app", "event=reply", "ai.model=gpt-4o-mini", "ai.usage.tokens=120"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %s in %s", want, line)
		}
	}
	for _, unwanted := range []string{"empty=", "outcome="} {
		if strings.Contains(line, unwanted) {
			t.Fatalf("unexpected %s in %s", unwanted, line)
		}
	}
}

func TestErrorsWriterReceivesOnlyErrors(t *testing.T) {
	main, errs := &bytes.Buffer{}, &bytes.Buffer{}
	mw := newAsyncWriter([]io.Writer{main}, 0)
	ew := newAsyncWriter([]io.Writer{errs}, 0)
	log := slog.New(newStructuredHandler(handlerConfig{level: slog.LevelInfo, writer: mw, errors: ew, format: formatKV}))

	log.Info("fine")
	log.Debug("hidden")
	log.Error("broken", slog.String("err", "boom"))
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := ew.Close(); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(main.String(), "\n"); got != 2 {
		t.Fatalf("main sink lines = %d, want 2:\n%s", got, main.String())
	}
	if strings.Contains(errs.String(), "event=fine") || !strings.Contains(errs.String(), "event=broken") {
		t.Fatalf("errors sink = %q", errs.String())
	}
}

func TestAsyncWriterFlushAndClose(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newAsyncWriter([]io.Writer{buf}, 16)
	for i := 0; i < 100; i++ {
		if err := w.Write([]byte("line\n")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "line"); got != 100 {
		t.Fatalf("flushed %d lines, want 100", got)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Write([]byte("late\n")); !errors.Is(err, errWriterClosed) {
		t.Fatalf("write after close: %v", err)
	}
}

func TestContextMeta(t *testing.T) {
	parent := WithUpdateMeta(context.Background(), 5, 6, 7)
	child := WithHandler(WithRID(parent, "r"), "command.start")

	if RIDFrom(parent) != "" || HandlerFrom(parent) != "" {
		t.Fatal("parent context was mutated")
	}
	if RIDFrom(child) != "r" || HandlerFrom(child) != "command.start" {
		t.Fatalf("child meta = %q %q", RIDFrom(child), HandlerFrom(child))
	}
	if UpdateIDFrom(child) != 5 || UserIDFrom(child) != 6 || ChatIDFrom(child) != 7 {
		t.Fatal("update meta lost")
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("a\x00b\u200bc\nd", 10); got != "abc\nd" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeLimit("سلام دنیا", 4); got != "سلام" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeLimit("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 4)
	allowed := 0
	for i := 0; i < 8; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("allowed %d of 8, want 2", allowed)
	}

	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}

	cases := map[string][2]int{"1/50": {1, 50}, "10": {1, 10}, "0": {0, 0}, "x/2": {0, 0}, "": {0, 0}}
	for spec, want := range cases {
		if n, d := parseRatioSpec(spec); n != want[0] || d != want[1] {
			t.Fatalf("parseRatioSpec(%q) = %d/%d, want %d/%d", spec, n, d, want[0], want[1])
		}
	}
}

func TestSummarizeStrings(t *testing.T) {
	got, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if got != "a, b" || !truncated {
		t.Fatalf("got %q %v", got, truncated)
	}
	got, truncated = SummarizeStrings([]string{"a"}, 6)
	if got != "a" || truncated {
		t.Fatalf("got %q %v", got, truncated)
	}
}
