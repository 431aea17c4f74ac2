package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/codexs/hirebot/core/logger"
)

const (
	ApplicationsFile = "applications.jsonl"
	ContactsFile     = "contact_messages.jsonl"
)

// JSONLRecordLog appends one JSON object per line. Appends are serialized
// and fsynced before returning.
type JSONLRecordLog struct {
	appsPath     string
	contactsPath string

	appsMu     sync.Mutex
	contactsMu sync.Mutex
}

// NewJSONLRecordLog stores both logs under dir.
func NewJSONLRecordLog(dir string) (*JSONLRecordLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}
	return &JSONLRecordLog{
		appsPath:     filepath.Join(dir, ApplicationsFile),
		contactsPath: filepath.Join(dir, ContactsFile),
	}, nil
}

func appendLine(path string, mu *sync.Mutex, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode record: %w", err)
	}
	line = append(line, '\n')

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage: append %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage: sync %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func (l *JSONLRecordLog) AppendApplication(ctx context.Context, app *Application) error {
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now().UTC()
	}
	if err := appendLine(l.appsPath, &l.appsMu, app); err != nil {
		return err
	}
	logger.Info(ctx, "store", "record.application",
		slog.String("status", "ok"),
		slog.String("application_id", app.ID),
		slog.Int64("user_id", app.Applicant.TelegramID),
	)
	return nil
}

func (l *JSONLRecordLog) AppendContact(ctx context.Context, msg *ContactMessage) error {
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now().UTC()
	}
	if err := appendLine(l.contactsPath, &l.contactsMu, msg); err != nil {
		return err
	}
	logger.Info(ctx, "store", "record.contact",
		slog.String("status", "ok"),
		slog.Int64("user_id", msg.Sender.TelegramID),
	)
	return nil
}

// scanLines decodes every line of path into T, skipping malformed lines.
func scanLines[T any](ctx context.Context, path string, mu *sync.Mutex, keep func(*T) bool) ([]T, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var out []T
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		if keep(&rec) {
			out = append(out, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", filepath.Base(path), err)
	}
	if skipped > 0 {
		logger.Warn(ctx, "store", "record.scan",
			slog.String("file", filepath.Base(path)),
			slog.Int("skipped", skipped),
		)
	}
	return out, nil
}

func (l *JSONLRecordLog) Applications(ctx context.Context, q Query) ([]Application, error) {
	apps, err := scanLines(ctx, l.appsPath, &l.appsMu, func(a *Application) bool {
		return q.match(a.Applicant.TelegramID, a.SubmittedAt)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].SubmittedAt.After(apps[j].SubmittedAt) })
	if q.Limit > 0 && len(apps) > q.Limit {
		apps = apps[:q.Limit]
	}
	return apps, nil
}

func (l *JSONLRecordLog) ApplicationByID(ctx context.Context, id string) (*Application, error) {
	apps, err := scanLines(ctx, l.appsPath, &l.appsMu, func(a *Application) bool { return a.ID == id })
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, ErrNotFound
	}
	return &apps[len(apps)-1], nil
}

func (l *JSONLRecordLog) Contacts(ctx context.Context, q Query) ([]ContactMessage, error) {
	msgs, err := scanLines(ctx, l.contactsPath, &l.contactsMu, func(m *ContactMessage) bool {
		return q.match(m.Sender.TelegramID, m.SubmittedAt)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].SubmittedAt.After(msgs[j].SubmittedAt) })
	if q.Limit > 0 && len(msgs) > q.Limit {
		msgs = msgs[:q.Limit]
	}
	return msgs, nil
}
