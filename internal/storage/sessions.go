package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/session"
)

const (
	sessionPrefix = "session_"
	sessionSuffix = ".json"
)

// FileSessionStore keeps each snapshot in its own JSON file. Writes go to a
// temp file in the same directory and are renamed into place, so a reader
// sees either the previous or the new snapshot.
type FileSessionStore struct {
	dir string
	now func() time.Time
}

// NewFileSessionStore creates dir if needed.
func NewFileSessionStore(dir string) (*FileSessionStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: empty sessions dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create sessions dir: %w", err)
	}
	return &FileSessionStore{dir: dir, now: time.Now}, nil
}

func (s *FileSessionStore) path(userID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", sessionPrefix, userID, sessionSuffix))
}

func (s *FileSessionStore) Save(ctx context.Context, sess *session.Session) error {
	sess.UpdatedAt = s.now().UTC()
	data, err := session.Marshal(sess)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf("%s%d-*.tmp", sessionPrefix, sess.UserID))
	if err != nil {
		return fmt.Errorf("storage: create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("storage: write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("storage: sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("storage: close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path(sess.UserID)); err != nil {
		cleanup()
		return fmt.Errorf("storage: rename snapshot: %w", err)
	}

	logger.Debug(ctx, "store", "session.save",
		slog.String("status", "ok"),
		slog.Int64("user_id", sess.UserID),
		slog.String("flow", string(sess.Flow)),
		slog.Int("question_index", sess.QuestionIndex),
	)
	return nil
}

func (s *FileSessionStore) Load(ctx context.Context, userID int64) (*session.Session, bool) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn(ctx, "store", "session.load",
				slog.String("status", "fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}
	sess, err := session.Unmarshal(userID, data)
	if err != nil {
		logger.Warn(ctx, "store", "session.load",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("cause", "malformed"),
			slog.String("err", err.Error()),
		)
		return nil, false
	}
	if fixed := sess.Sanitize(); len(fixed) > 0 {
		logger.Warn(ctx, "store", "session.repaired",
			slog.Int64("user_id", userID),
			slog.String("fixes", strings.Join(fixed, ",")),
		)
	}
	return sess, true
}

func (s *FileSessionStore) Delete(ctx context.Context, userID int64) error {
	err := os.Remove(s.path(userID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete snapshot %d: %w", userID, err)
	}
	logger.Debug(ctx, "store", "session.delete", slog.Int64("user_id", userID))
	return nil
}

// List returns stored snapshots, most recently written first.
func (s *FileSessionStore) List(ctx context.Context) ([]SessionInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list sessions: %w", err)
	}
	out := make([]SessionInfo, 0, len(entries))
	for _, e := range entries {
		id, ok := parseSessionName(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, SessionInfo{UserID: id, UpdatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// CleanupOlderThan removes snapshots not written within age.
func (s *FileSessionStore) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-age)
	removed := 0
	for _, info := range infos {
		if !info.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.Delete(ctx, info.UserID); err != nil {
			logger.Warn(ctx, "store", "session.cleanup",
				slog.String("status", "fail"),
				slog.Int64("user_id", info.UserID),
				slog.String("err", err.Error()),
			)
			continue
		}
		removed++
	}
	logger.Info(ctx, "store", "session.cleanup",
		slog.String("status", "ok"),
		slog.Int("count", removed),
		slog.Duration("older_than", age),
	)
	return removed, nil
}

func parseSessionName(name string) (int64, bool) {
	if !strings.HasPrefix(name, sessionPrefix) || !strings.HasSuffix(name, sessionSuffix) {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, sessionPrefix), sessionSuffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
