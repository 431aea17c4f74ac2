package logger

import (
	"slices"
	"strings"
)

// Enumerated fields are lower-cased so dashboards can group on them.
// Outcomes outside the known vocabulary are dropped.
var (
	levelNames = map[string]string{
		"debug": "DEBUG", "info": "INFO", "warn": "WARN", "warning": "WARN", "error": "ERROR",
	}
	knownOutcome = []string{"ok", "fail", "cancelled", "rate_limited"}
)

func normalizeLevel(level string) string {
	if mapped, ok := levelNames[strings.ToLower(level)]; ok {
		return mapped
	}
	if level == "" {
		return "INFO"
	}
	return strings.ToUpper(level)
}

func normalizeEnums(fields map[string]any) {
	if s, ok := fields["status"].(string); ok {
		fields["status"] = strings.ToLower(s)
	}
	if o, ok := fields["outcome"].(string); ok {
		o = strings.ToLower(o)
		if !slices.Contains(knownOutcome, o) {
			delete(fields, "outcome")
		} else {
			fields["outcome"] = o
		}
	}
}

var defaultKeyOrder = []string{
	"ts", "level", "component", "event", "status",
	"rid", "rid_full", "ts_unix_nano",
	"update_id", "user_id", "chat_id", "chat_type", "handler", "kind",
	"outcome", "duration_ms", "messages", "kb",
	"flow", "question_index", "question_key", "application_id", "sink",
	"payload", "lang", "username",
	"mode", "listen", "public_url", "driver", "db", "host", "port",
	"err", "err_kind", "err_code", "cause", "attempt", "delay_ms",
}
