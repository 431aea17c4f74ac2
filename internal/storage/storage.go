// Package storage persists conversation snapshots and the append-only record
// log of submitted applications and contact messages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/codexs/hirebot/internal/session"
)

// ErrNotFound is returned when a record lookup has no match.
var ErrNotFound = errors.New("storage: not found")

// SessionStore keeps one snapshot per user. Load never fails: an unreadable
// snapshot is reported as absent.
type SessionStore interface {
	Save(ctx context.Context, s *session.Session) error
	Load(ctx context.Context, userID int64) (*session.Session, bool)
	Delete(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]SessionInfo, error)
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// SessionInfo describes a stored snapshot without decoding it.
type SessionInfo struct {
	UserID    int64
	UpdatedAt time.Time
}

// Query narrows record log reads. Zero fields do not filter.
type Query struct {
	UserID int64
	Since  time.Time
	Until  time.Time
	Limit  int
}

func (q Query) match(userID int64, at time.Time) bool {
	if q.UserID != 0 && userID != q.UserID {
		return false
	}
	if !q.Since.IsZero() && at.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && at.After(q.Until) {
		return false
	}
	return true
}

// RecordLog is the durable, append-only store of submissions. Reads return
// records newest first.
type RecordLog interface {
	AppendApplication(ctx context.Context, app *Application) error
	AppendContact(ctx context.Context, msg *ContactMessage) error
	Applications(ctx context.Context, q Query) ([]Application, error)
	ApplicationByID(ctx context.Context, id string) (*Application, error)
	Contacts(ctx context.Context, q Query) ([]ContactMessage, error)
}
