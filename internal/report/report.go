// Package report aggregates the record log and the snapshot store into the
// admin and group command replies.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/storage"
)

const (
	recentLimit   = 10
	dailyLimit    = 5
	sessionsLimit = 20
)

// Reporter reads the stores. It never mutates them except through Cleanup.
type Reporter struct {
	records  storage.RecordLog
	sessions storage.SessionStore
	voiceDir string
	now      func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock overrides the time source used for period boundaries.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithVoiceDir sets the directory whose files count as voice samples.
func WithVoiceDir(dir string) Option {
	return func(r *Reporter) { r.voiceDir = dir }
}

func New(records storage.RecordLog, sessions storage.SessionStore, opts ...Option) *Reporter {
	r := &Reporter{records: records, sessions: sessions, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Totals is the all-time overview, also served by the ops endpoint.
type Totals struct {
	Applications int       `json:"applications"`
	WithVoice    int       `json:"with_voice"`
	VoiceSkipped int       `json:"voice_skipped"`
	Contacts     int       `json:"contacts"`
	UniqueUsers  int       `json:"unique_users"`
	English      int       `json:"en"`
	Farsi        int       `json:"fa"`
	Sessions     int       `json:"sessions"`
	VoiceFiles   int       `json:"voice_files"`
	GeneratedAt  time.Time `json:"generated_at"`
}

type tally struct {
	apps, voices, skipped, en, fa int
	users                         map[int64]struct{}
}

func count(apps []storage.Application) tally {
	t := tally{users: map[int64]struct{}{}}
	for i := range apps {
		a := &apps[i]
		t.apps++
		if a.Applicant.TelegramID != 0 {
			t.users[a.Applicant.TelegramID] = struct{}{}
		}
		if a.HasVoice() {
			t.voices++
		}
		if a.VoiceSkipped {
			t.skipped++
		}
		switch a.Language {
		case i18n.EN:
			t.en++
		case i18n.FA:
			t.fa++
		}
	}
	return t
}

// Totals collects the all-time counters.
func (r *Reporter) Totals(ctx context.Context) (Totals, error) {
	apps, err := r.records.Applications(ctx, storage.Query{})
	if err != nil {
		return Totals{}, fmt.Errorf("report: applications: %w", err)
	}
	contacts, err := r.records.Contacts(ctx, storage.Query{})
	if err != nil {
		return Totals{}, fmt.Errorf("report: contacts: %w", err)
	}
	infos, err := r.sessions.List(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("report: sessions: %w", err)
	}
	t := count(apps)
	return Totals{
		Applications: t.apps,
		WithVoice:    t.voices,
		VoiceSkipped: t.skipped,
		Contacts:     len(contacts),
		UniqueUsers:  len(t.users),
		English:      t.en,
		Farsi:        t.fa,
		Sessions:     len(infos),
		VoiceFiles:   r.voiceFiles(),
		GeneratedAt:  r.now().UTC(),
	}, nil
}

func (r *Reporter) voiceFiles() int {
	if r.voiceDir == "" {
		return 0
	}
	entries, err := os.ReadDir(r.voiceDir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

func itoa(n int) string { return strconv.Itoa(n) }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// BotStatus renders /botstatus.
func (r *Reporter) BotStatus(ctx context.Context, lang i18n.Language) (string, error) {
	t, err := r.Totals(ctx)
	if err != nil {
		return "", err
	}
	return hiring.Fill(hiring.AdminStatus.Get(lang),
		"app_count", itoa(t.Applications),
		"contact_count", itoa(t.Contacts),
		"session_count", itoa(t.Sessions),
		"voice_count", itoa(t.VoiceFiles),
		"timestamp", t.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
	), nil
}

// Stats renders /stats. An application counts as completed once it carries
// a voice sample.
func (r *Reporter) Stats(ctx context.Context, lang i18n.Language) (string, error) {
	t, err := r.Totals(ctx)
	if err != nil {
		return "", err
	}
	return hiring.Fill(hiring.AdminStats.Get(lang),
		"total_apps", itoa(t.Applications),
		"completed_apps", itoa(t.WithVoice),
		"incomplete_apps", itoa(t.Applications-t.WithVoice),
		"contact_count", itoa(t.Contacts),
		"unique_users", itoa(t.UniqueUsers),
		"en_count", itoa(t.English),
		"fa_count", itoa(t.Farsi),
	), nil
}

// Debug renders /debug for one user.
func (r *Reporter) Debug(ctx context.Context, userID int64, lang i18n.Language) (string, error) {
	apps, err := r.records.Applications(ctx, storage.Query{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("report: applications: %w", err)
	}
	uid := strconv.FormatInt(userID, 10)
	s, ok := r.sessions.Load(ctx, userID)
	if !ok {
		if len(apps) == 0 {
			return hiring.Fill(hiring.AdminNoSession.Get(lang), "user_id", uid), nil
		}
		return hiring.Fill(hiring.AdminDebugUser.Get(lang),
			"user_id", uid,
			"language", "N/A",
			"flow", "N/A",
			"question_index", "0",
			"answer_count", "0",
			"waiting_voice", "No",
			"voice_skipped", "No",
			"edit_mode", "No",
			"app_count", itoa(len(apps)),
		), nil
	}
	language := "N/A"
	if s.HasLanguage() {
		language = string(s.Language)
	}
	return hiring.Fill(hiring.AdminDebugUser.Get(lang),
		"user_id", uid,
		"language", language,
		"flow", string(s.Flow),
		"question_index", itoa(s.QuestionIndex),
		"answer_count", itoa(s.AnsweredCount()),
		"waiting_voice", yesNo(s.WaitingVoice),
		"voice_skipped", yesNo(s.VoiceSkipped),
		"edit_mode", yesNo(s.EditMode),
		"app_count", itoa(len(apps)),
	), nil
}

// Sessions renders /sessions: stored snapshots holding unfinished
// applications, newest first.
func (r *Reporter) Sessions(ctx context.Context, lang i18n.Language) (string, error) {
	infos, err := r.sessions.List(ctx)
	if err != nil {
		return "", fmt.Errorf("report: sessions: %w", err)
	}
	var lines []string
	for i, info := range infos {
		if i == sessionsLimit {
			break
		}
		s, ok := r.sessions.Load(ctx, info.UserID)
		if !ok || !s.HasIncompleteApplication() {
			continue
		}
		language := "N/A"
		if s.HasLanguage() {
			language = string(s.Language)
		}
		lines = append(lines, fmt.Sprintf("• User %d: %d answers, %s", info.UserID, s.AnsweredCount(), language))
	}
	if len(lines) == 0 {
		return hiring.AdminNoSessions.Get(lang), nil
	}
	list := strings.Join(lines, "\n")
	if len(infos) > sessionsLimit {
		list += fmt.Sprintf("\n\n... and %d more", len(infos)-sessionsLimit)
	}
	return hiring.Fill(hiring.AdminSessionList.Get(lang),
		"count", itoa(len(infos)),
		"sessions_list", list,
	), nil
}

// Cleanup removes snapshots untouched for longer than days.
func (r *Reporter) Cleanup(ctx context.Context, days int, lang i18n.Language) (string, error) {
	n, err := r.sessions.CleanupOlderThan(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("report: cleanup: %w", err)
	}
	return hiring.Fill(hiring.AdminCleanupDone.Get(lang), "count", itoa(n), "days", itoa(days)), nil
}

type periods struct {
	today, week, month time.Time
}

func (r *Reporter) periods() (time.Time, periods) {
	now := r.now().UTC()
	return now, periods{
		today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		week:  now.AddDate(0, 0, -7),
		month: now.AddDate(0, 0, -30),
	}
}

func (r *Reporter) window(ctx context.Context, since, until time.Time) ([]storage.Application, []storage.ContactMessage, error) {
	q := storage.Query{Since: since, Until: until}
	apps, err := r.records.Applications(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("report: applications: %w", err)
	}
	contacts, err := r.records.Contacts(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("report: contacts: %w", err)
	}
	return apps, contacts, nil
}

func voiceLabel(a *storage.Application) string {
	if a.HasVoice() {
		return "✅ Voice"
	}
	return "⏭️ Skipped"
}

func langCode(l i18n.Language) string {
	if l == i18n.FA {
		return "FA"
	}
	return "EN"
}

func item(a *storage.Application, date string, lang i18n.Language) string {
	return hiring.Fill(hiring.GroupApplicationItem.Get(lang),
		"name", hiring.Escape(a.Applicant.Name()),
		"email", hiring.Escape(a.Email()),
		"application_id", a.ID,
		"date", date,
		"language", langCode(a.Language),
		"voice_status", voiceLabel(a),
	)
}

// Daily renders /daily: today, the last 7 days and the last 30 days, plus
// the newest applications of today.
func (r *Reporter) Daily(ctx context.Context, lang i18n.Language) (string, error) {
	now, p := r.periods()
	todayApps, todayContacts, err := r.window(ctx, p.today, now)
	if err != nil {
		return "", err
	}
	weekApps, weekContacts, err := r.window(ctx, p.week, now)
	if err != nil {
		return "", err
	}
	monthApps, monthContacts, err := r.window(ctx, p.month, now)
	if err != nil {
		return "", err
	}
	t := count(todayApps)

	recent := i18n.L("No applications today.", "هیچ درخواستی امروز نیست.").Get(lang)
	if len(todayApps) > 0 {
		items := make([]string, 0, dailyLimit)
		for i := range todayApps {
			if i == dailyLimit {
				break
			}
			a := &todayApps[i]
			items = append(items, item(a, a.SubmittedAt.UTC().Format("15:04"), lang))
		}
		recent = strings.Join(items, "\n")
	}

	return hiring.Fill(hiring.GroupDailyReport.Get(lang),
		"date", now.Format("2006-01-02"),
		"today_apps", itoa(len(todayApps)),
		"today_contacts", itoa(len(todayContacts)),
		"today_voices", itoa(t.voices),
		"today_skipped", itoa(t.skipped),
		"en_count", itoa(t.en),
		"fa_count", itoa(t.fa),
		"week_apps", itoa(len(weekApps)),
		"week_contacts", itoa(len(weekContacts)),
		"month_apps", itoa(len(monthApps)),
		"month_contacts", itoa(len(monthContacts)),
		"recent_list", recent,
	), nil
}

func percent(part, whole int) string {
	if whole == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(part)*100/float64(whole), 'f', 1, 64)
}

// GroupStats renders /gstats.
func (r *Reporter) GroupStats(ctx context.Context, lang i18n.Language) (string, error) {
	now, p := r.periods()
	all, contacts, err := r.window(ctx, time.Time{}, time.Time{})
	if err != nil {
		return "", err
	}
	var today, week, month int
	for i := range all {
		at := all[i].SubmittedAt
		if at.After(now) {
			continue
		}
		if !at.Before(p.today) {
			today++
		}
		if !at.Before(p.week) {
			week++
		}
		if !at.Before(p.month) {
			month++
		}
	}
	t := count(all)
	return hiring.Fill(hiring.GroupStatsReport.Get(lang),
		"total_apps", itoa(t.apps),
		"total_contacts", itoa(len(contacts)),
		"unique_users", itoa(len(t.users)),
		"total_voices", itoa(t.voices),
		"total_skipped", itoa(t.skipped),
		"en_count", itoa(t.en),
		"en_percent", percent(t.en, t.en+t.fa),
		"fa_count", itoa(t.fa),
		"fa_percent", percent(t.fa, t.en+t.fa),
		"today_apps", itoa(today),
		"week_apps", itoa(week),
		"month_apps", itoa(month),
	), nil
}

// Recent renders /recent: the newest applications.
func (r *Reporter) Recent(ctx context.Context, lang i18n.Language) (string, error) {
	all, err := r.records.Applications(ctx, storage.Query{})
	if err != nil {
		return "", fmt.Errorf("report: applications: %w", err)
	}
	if len(all) == 0 {
		return hiring.GroupNoRecent.Get(lang), nil
	}
	shown := all
	if len(shown) > recentLimit {
		shown = shown[:recentLimit]
	}
	items := make([]string, 0, len(shown))
	for i := range shown {
		items = append(items, item(&shown[i], hiring.FormatDate(shown[i].SubmittedAt), lang))
	}
	return hiring.Fill(hiring.GroupRecentApplications.Get(lang),
		"applications_list", strings.Join(items, "\n"),
		"count", itoa(len(shown)),
		"total", itoa(len(all)),
	), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return hiring.Escape(s)
}

// Application renders /app <id>.
func (r *Reporter) Application(ctx context.Context, id string, lang i18n.Language) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return hiring.GroupAppUsage.Get(lang), nil
	}
	a, err := r.records.ApplicationByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return hiring.GroupApplicationNotFound.Get(lang), nil
	}
	if err != nil {
		return "", fmt.Errorf("report: application %s: %w", id, err)
	}

	var answers []string
	for _, q := range hiring.Questions {
		if v := a.Answer(q.Key); v != "" {
			answers = append(answers, "• "+q.Key+": "+hiring.Escape(v))
		}
	}
	answersText := "No answers provided."
	if len(answers) > 0 {
		answersText = strings.Join(answers, "\n")
	}

	voice := "❌ No voice sample"
	switch {
	case a.HasVoice():
		voice = "✅ Voice sample received"
	case a.VoiceSkipped:
		voice = "⏭️ Voice sample skipped"
	}

	language := "English"
	if a.Language == i18n.FA {
		language = "Farsi"
	}

	return hiring.Fill(hiring.GroupApplicationDetails.Get(lang),
		"application_id", a.ID,
		"submitted_at", a.SubmittedAt.UTC().Format("2006-01-02 15:04 UTC"),
		"language", language,
		"name", hiring.Escape(a.Applicant.Name()),
		"email", orNA(a.Answer(hiring.KeyEmail)),
		"contact", orNA(a.Answer(hiring.KeyContact)),
		"location", orNA(a.Answer(hiring.KeyLocation)),
		"portfolio", orNA(a.Answer(hiring.KeyPortfolio)),
		"username", orNA(a.Applicant.Username),
		"telegram_id", strconv.FormatInt(a.Applicant.TelegramID, 10),
		"answers", answersText,
		"voice_status", voice,
	), nil
}
