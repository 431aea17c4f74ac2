package conversation

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/ai"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/intent"
	"github.com/codexs/hirebot/internal/session"
	"github.com/codexs/hirebot/internal/storage"
)

const historyLimit = 10

func i18nDigits(n int, lang i18n.Language) string {
	return i18n.LocalizeDigits(strconv.Itoa(n), lang)
}

func (t *turn) mainMenu() {
	lang := t.lang()
	t.s.LastMenuChoice = ""
	t.say(hiring.MainMenuPrompt.Get(lang)+"\n"+hiring.MenuHelper.Get(lang), mainMenuKeyboard(lang))
}

func (t *turn) landing() {
	t.photo("landing-card", t.e.media.LandingURL, hiring.LandingCardCaption, nil)
}

func (t *turn) welcome() {
	lang := t.lang()
	t.photo("welcome-banner", "", hiring.WelcomeMessage.Get(lang), mainMenuKeyboard(lang))
}

// start handles /start: offer to resume a stored incomplete application,
// otherwise begin again at the language prompt.
func (t *turn) start() {
	saved, ok := t.e.store.Load(t.ctx, t.ev.UserID)
	if ok && saved.HasLanguage() && saved.HasIncompleteApplication() {
		saved.AIReplyCount, saved.AIWindowStart = t.s.AIReplyCount, t.s.AIWindowStart
		t.s = saved
		t.offerResume()
		return
	}
	t.s.ResetHiring()
	t.s.Language = ""
	t.dirty = true
	t.landing()
	t.say(hiring.BilingualWelcome, languageKeyboard())
}

// menuCommand handles /menu and /cancel like the menu keyword.
func (t *turn) menuCommand() {
	switch {
	case !t.s.HasLanguage():
		t.start()
	case t.s.InResumePrompt():
		t.s.ResetHiring()
		t.forget()
		t.mainMenu()
	case t.s.ExitConfirmationPending:
		t.askExit()
	default:
		t.leave()
	}
}

func (t *turn) help() {
	switch {
	case t.s.WaitingVoice:
		t.sayL(hiring.HelpTextVoice, nil)
	case t.s.Flow == session.FlowApply:
		t.sayL(hiring.HelpTextApply, nil)
	default:
		t.sayL(hiring.HelpText, nil)
	}
}

func (t *turn) status() {
	lang := t.lang()
	apps, err := t.e.records.Applications(t.ctx, storage.Query{UserID: t.ev.UserID, Limit: 1})
	if err != nil {
		logger.Warn(t.ctx, "conv", "status.lookup",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		t.say(hiring.ErrorGeneric.Get(lang), nil)
		return
	}
	switch {
	case len(apps) > 0:
		body := hiring.Fill(hiring.StatusLatest.Get(lang),
			"app_id", apps[0].ID,
			"date", hiring.FormatDate(apps[0].SubmittedAt),
			"stage", hiring.StatusStageReview.Get(lang),
		)
		t.say(hiring.StatusHeader.Get(lang)+"\n\n"+body, nil)
	case t.s.HasIncompleteApplication() || t.s.Flow == session.FlowApply:
		t.say(hiring.Fill(hiring.StatusInProgress.Get(lang), "answered", i18nDigits(t.s.AnsweredCount(), lang)), nil)
	default:
		t.say(hiring.StatusNotFound.Get(lang), nil)
	}
}

// menuChoice is the last guard: exact button, inferred topic, AI, then the
// static fallback. A repeat request shows the menu again.
func (t *turn) menuChoice(text string) {
	lang := t.s.Language
	t.s.ClearContact()
	t.s.Flow = session.FlowIdle
	t.s.LastMenuChoice = ""

	r := intent.Classify(text, lang)
	logger.Debug(t.ctx, "conv", "menu.classified", slog.String("intent", r.Kind.String()))
	switch r.Kind {
	case intent.MenuButton:
		t.open(r.Action)
		return
	case intent.InferredTopic:
		t.say(hiring.Fill(hiring.SmartFallbackHint.Get(lang), "topic", intent.Topic(r.Action).Get(lang)), nil)
		t.open(r.Action)
		return
	case intent.RepeatCommand:
		t.mainMenu()
		return
	}
	if t.aiReply(text) {
		return
	}
	t.say(hiring.FallbackMessage.Get(lang), mainMenuKeyboard(lang))
}

func (t *turn) open(a intent.MenuAction) {
	t.s.LastMenuChoice = a.Name()
	switch a.(type) {
	case intent.OpenApply:
		t.openApply()
	case intent.OpenAbout:
		t.openAbout()
	case intent.OpenUpdates:
		t.openUpdates()
	case intent.OpenContact:
		t.openContact()
	case intent.OpenHistory:
		t.openHistory()
	case intent.SwitchLanguage:
		t.s.Language = t.s.Language.Toggle()
		t.dirty = true
		t.mainMenu()
	}
}

func (t *turn) openAbout() {
	lang := t.lang()
	for _, sec := range hiring.AboutSections.Get(lang) {
		t.say(hiring.AboutSection(sec), nil)
	}
	t.s.AwaitingViewRoles = true
	t.say(hiring.AboutCTA.Get(lang), viewRolesKeyboard(lang))
}

func (t *turn) openUpdates() {
	lang := t.lang()
	shown := false
	for _, card := range hiring.UpdateCards.Get(lang) {
		t.photo(card.LocalPhoto, card.PhotoURL, hiring.UpdateCard(card), nil)
		shown = true
	}
	if news := strings.TrimSpace(strings.Join(hiring.News.Get(lang), "\n")); news != "" {
		t.say(news+"\n\nMore: "+hiring.UpdatesLink, mainMenuKeyboard(lang))
		shown = true
	}
	if !shown {
		t.say(hiring.Fill(hiring.NoUpdates.Get(lang), "link", hiring.UpdatesLink), mainMenuKeyboard(lang))
		return
	}
	t.say(hiring.UpdatesCTA.Get(lang)+" "+hiring.UpdatesLink, mainMenuKeyboard(lang))
}

func (t *turn) openHistory() {
	lang := t.lang()
	apps, err := t.e.records.Applications(t.ctx, storage.Query{UserID: t.ev.UserID})
	if err != nil {
		logger.Warn(t.ctx, "conv", "history.lookup",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		t.say(hiring.ErrorGeneric.Get(lang), mainMenuKeyboard(lang))
		return
	}
	if len(apps) == 0 {
		t.say(hiring.HistoryEmpty.Get(lang), mainMenuKeyboard(lang))
		return
	}
	t.say(hiring.HistoryHeader.Get(lang), mainMenuKeyboard(lang))
	for i, app := range apps {
		if i == historyLimit {
			break
		}
		voice := "—"
		switch {
		case app.VoiceFileID != "":
			voice = hiring.HistoryVoiceOK.Get(lang)
		case app.VoiceSkipped || app.VoiceFilePath == "":
			voice = hiring.HistoryVoiceSkip.Get(lang)
		}
		name := app.Answer(hiring.KeyFullName)
		if name == "" {
			name = "—"
		}
		email := app.Email()
		if email == "" {
			email = "—"
		}
		t.say(hiring.Fill(hiring.HistoryItem.Get(lang),
			"number", i18nDigits(i+1, lang),
			"app_id", app.ID,
			"date", hiring.FormatDate(app.SubmittedAt),
			"name", hiring.Escape(name),
			"email", hiring.Escape(email),
			"voice_status", voice,
		), nil)
	}
	if len(apps) > historyLimit {
		t.say(hiring.Fill(hiring.HistoryTruncated.Get(lang), "total", i18nDigits(len(apps), lang)), nil)
	}
}

// aiReply tries the AI responder within the session quota. It reports
// whether the user got a reply, including the quota notice.
func (t *turn) aiReply(text string) bool {
	if _, off := t.e.ai.(ai.Disabled); off {
		return false
	}
	lang := t.lang()
	// Mid-form replies keep the question keyboard on screen.
	kb := mainMenuKeyboard(lang)
	if t.s.Flow != session.FlowIdle {
		kb = nil
	}
	if !t.s.AllowAIReply(t.e.now()) {
		t.e.metrics.AI("quota", 0)
		t.dirty = true
		t.say(hiring.AIRateLimitMessage.Get(lang), kb)
		return true
	}
	start := time.Now()
	reply, ok := t.e.ai.Reply(t.ctx, lang, ai.ContextFor(t.s), text)
	if !ok {
		t.e.metrics.AI("empty", time.Since(start))
		return false
	}
	t.e.metrics.AI("replied", time.Since(start))
	t.s.RecordAIReply()
	t.dirty = true
	t.say(reply, kb)
	return true
}
