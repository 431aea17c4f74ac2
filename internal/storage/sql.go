package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/i18n"
)

// SQLRecordLog stores records in the applications and contact_messages
// tables created by the migrations. It works on postgres and sqlite.
type SQLRecordLog struct {
	db *sqlx.DB
}

func NewSQLRecordLog(db *sqlx.DB) *SQLRecordLog {
	return &SQLRecordLog{db: db}
}

type applicationRow struct {
	ID            string `db:"id"`
	UserID        int64  `db:"user_id"`
	Username      string `db:"username"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	Language      string `db:"language"`
	Answers       string `db:"answers"`
	VoiceFilePath string `db:"voice_file_path"`
	VoiceFileID   string `db:"voice_file_id"`
	VoiceSkipped  bool   `db:"voice_skipped"`
	SubmittedAt   int64  `db:"submitted_at"`
}

type contactRow struct {
	UserID      int64  `db:"user_id"`
	Username    string `db:"username"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Language    string `db:"language"`
	Message     string `db:"message"`
	SubmittedAt int64  `db:"submitted_at"`
}

const applicationColumns = `id, user_id, username, first_name, last_name, language, answers,
	voice_file_path, voice_file_id, voice_skipped, submitted_at`

const contactColumns = `user_id, username, first_name, last_name, language, message, submitted_at`

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func (r applicationRow) application() (Application, error) {
	app := Application{
		ID:            r.ID,
		SubmittedAt:   fromMillis(r.SubmittedAt),
		Language:      i18n.Language(r.Language),
		Applicant:     Applicant{TelegramID: r.UserID, Username: r.Username, FirstName: r.FirstName, LastName: r.LastName},
		VoiceFilePath: r.VoiceFilePath,
		VoiceFileID:   r.VoiceFileID,
		VoiceSkipped:  r.VoiceSkipped,
	}
	if err := json.Unmarshal([]byte(r.Answers), &app.Answers); err != nil {
		return Application{}, fmt.Errorf("storage: decode answers of %s: %w", r.ID, err)
	}
	return app, nil
}

func (l *SQLRecordLog) AppendApplication(ctx context.Context, app *Application) error {
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now().UTC()
	}
	answers, err := json.Marshal(app.Answers)
	if err != nil {
		return fmt.Errorf("storage: encode answers: %w", err)
	}
	row := applicationRow{
		ID:            app.ID,
		UserID:        app.Applicant.TelegramID,
		Username:      app.Applicant.Username,
		FirstName:     app.Applicant.FirstName,
		LastName:      app.Applicant.LastName,
		Language:      string(app.Language),
		Answers:       string(answers),
		VoiceFilePath: app.VoiceFilePath,
		VoiceFileID:   app.VoiceFileID,
		VoiceSkipped:  app.VoiceSkipped,
		SubmittedAt:   toMillis(app.SubmittedAt),
	}
	start := time.Now()
	_, err = l.db.NamedExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES (:id, :user_id, :username, :first_name, :last_name, :language, :answers,
			:voice_file_path, :voice_file_id, :voice_skipped, :submitted_at)`, row)
	if err != nil {
		logger.Error(ctx, "db", "record.application",
			slog.String("status", "fail"),
			slog.String("application_id", app.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("storage: insert application: %w", err)
	}
	logger.Info(ctx, "db", "record.application",
		slog.String("status", "ok"),
		slog.String("application_id", app.ID),
		slog.Int64("user_id", app.Applicant.TelegramID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

func (l *SQLRecordLog) AppendContact(ctx context.Context, msg *ContactMessage) error {
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now().UTC()
	}
	row := contactRow{
		UserID:      msg.Sender.TelegramID,
		Username:    msg.Sender.Username,
		FirstName:   msg.Sender.FirstName,
		LastName:    msg.Sender.LastName,
		Language:    string(msg.Language),
		Message:     msg.Message,
		SubmittedAt: toMillis(msg.SubmittedAt),
	}
	_, err := l.db.NamedExecContext(ctx, `INSERT INTO contact_messages (`+contactColumns+`)
		VALUES (:user_id, :username, :first_name, :last_name, :language, :message, :submitted_at)`, row)
	if err != nil {
		return fmt.Errorf("storage: insert contact message: %w", err)
	}
	logger.Info(ctx, "db", "record.contact",
		slog.String("status", "ok"),
		slog.Int64("user_id", msg.Sender.TelegramID),
	)
	return nil
}

// where renders the filter of q with ? placeholders.
func (q Query) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, q.UserID)
	}
	if !q.Since.IsZero() {
		conds = append(conds, "submitted_at >= ?")
		args = append(args, toMillis(q.Since))
	}
	if !q.Until.IsZero() {
		conds = append(conds, "submitted_at <= ?")
		args = append(args, toMillis(q.Until))
	}
	clause := ""
	if len(conds) > 0 {
		clause = " WHERE " + strings.Join(conds, " AND ")
	}
	clause += " ORDER BY submitted_at DESC"
	if q.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return clause, args
}

func (l *SQLRecordLog) Applications(ctx context.Context, q Query) ([]Application, error) {
	clause, args := q.where()
	var rows []applicationRow
	if err := l.db.SelectContext(ctx, &rows, l.db.Rebind(`SELECT `+applicationColumns+` FROM applications`+clause), args...); err != nil {
		return nil, fmt.Errorf("storage: select applications: %w", err)
	}
	out := make([]Application, 0, len(rows))
	for _, r := range rows {
		app, err := r.application()
		if err != nil {
			logger.Warn(ctx, "db", "record.decode", slog.String("err", err.Error()))
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (l *SQLRecordLog) ApplicationByID(ctx context.Context, id string) (*Application, error) {
	var row applicationRow
	err := l.db.GetContext(ctx, &row, l.db.Rebind(`SELECT `+applicationColumns+` FROM applications WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select application %s: %w", id, err)
	}
	app, err := row.application()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (l *SQLRecordLog) Contacts(ctx context.Context, q Query) ([]ContactMessage, error) {
	clause, args := q.where()
	var rows []contactRow
	if err := l.db.SelectContext(ctx, &rows, l.db.Rebind(`SELECT `+contactColumns+` FROM contact_messages`+clause), args...); err != nil {
		return nil, fmt.Errorf("storage: select contact messages: %w", err)
	}
	out := make([]ContactMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, ContactMessage{
			SubmittedAt: fromMillis(r.SubmittedAt),
			Language:    i18n.Language(r.Language),
			Sender:      Applicant{TelegramID: r.UserID, Username: r.Username, FirstName: r.FirstName, LastName: r.LastName},
			Message:     r.Message,
		})
	}
	return out, nil
}
