package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/finalize"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/intent"
	"github.com/codexs/hirebot/internal/session"
)

func (t *turn) openApply() {
	lang := t.lang()
	t.s.StartHiring()
	t.dirty = true
	t.say(hiring.HiringIntro.Get(lang), backKeyboard(lang))
	t.askQuestion()
}

// askQuestion renders the question under the cursor. An out-of-range cursor
// sends the user back to the menu.
func (t *turn) askQuestion() {
	lang := t.lang()
	q, ok := t.s.CurrentQuestion()
	if !ok {
		logger.Warn(t.ctx, "conv", "session.repaired",
			slog.String("fixes", "question_index_out_of_range"),
			slog.Int("question_index", t.s.QuestionIndex),
		)
		t.s.QuestionIndex = 0
		t.s.Flow = session.FlowIdle
		t.dirty = true
		t.mainMenu()
		return
	}
	t.say(hiring.QuestionBox(t.s.QuestionIndex, lang), questionKeyboard(q, lang))
}

func (t *turn) reject(q hiring.Question, warning string) {
	t.say(warning, questionKeyboard(q, t.lang()))
	t.askQuestion()
}

// answer is the intake of one free-text answer in APPLY.
func (t *turn) answer(text string) {
	lang := t.s.Language
	q, ok := t.s.CurrentQuestion()
	if !ok {
		t.askQuestion()
		return
	}

	if text != "" {
		switch {
		case intent.IsMenuCommand(text, lang), intent.IsBackCommand(text, lang), intent.IsBackButton(text, lang):
			t.askExit()
			return
		case intent.IsRepeat(text, lang):
			t.askQuestion()
			return
		case intent.LooksLikeQuestion(text, lang) && t.aiReply(text):
			return
		}
	}

	var value *string
	switch {
	case text == "":
		if !q.Optional {
			t.reject(q, hiring.MissingAnswer.Get(lang))
			return
		}
	case intent.IsSkip(text, lang):
		if !q.Optional {
			t.reject(q, hiring.MissingAnswer.Get(lang))
			return
		}
	default:
		if warning, ok := validate(q, text); !ok {
			t.reject(q, warning.Get(lang))
			return
		}
		value = &text
	}

	t.s.SetAnswer(q.Key, value)
	t.dirty = true
	logger.Debug(t.ctx, "conv", "answer.saved",
		slog.String("key", q.Key),
		slog.Int("question_index", t.s.QuestionIndex),
		slog.Bool("skipped", value == nil),
	)
	t.advance()
}

// advance moves past an accepted answer: back to the summary when editing,
// to the next question, or to the voice sample after the last one.
func (t *turn) advance() {
	if t.s.EditMode {
		t.s.EditMode = false
		t.confirmation()
		return
	}
	if t.s.QuestionIndex+1 < hiring.Count {
		t.s.QuestionIndex++
		t.askQuestion()
		return
	}
	t.s.MarkVoiceWait()
	t.s.VoiceSkipped = false
	t.sayL(hiring.VoicePrompt, backKeyboard(t.lang()))
}

func (t *turn) confirmation() {
	lang := t.lang()
	t.s.Flow = session.FlowConfirm
	voice := hiring.VoiceState{
		Received: t.s.VoiceFilePath != "" || t.s.VoiceFileID != "",
		Skipped:  t.s.VoiceSkipped,
	}
	t.say(hiring.Summary(t.s.Answers, voice, lang), yesNoKeyboard(lang))
}

func (t *turn) editSelection(text string) {
	lang := t.s.Language
	n, ok := intent.ParseNumber(text)
	if !ok || n > hiring.Count+1 {
		t.say(hiring.InvalidEdit.Get(lang), editKeyboard(lang))
		return
	}
	t.s.AwaitingEditSelection = false
	t.dirty = true

	if n == hiring.Count+1 {
		t.s.EditMode = false
		t.s.ClearVoiceArtifacts()
		t.s.Flow = session.FlowApply
		t.s.QuestionIndex = hiring.Count - 1
		t.s.MarkVoiceWait()
		t.say(hiring.RerecordVoicePrompt.Get(lang), backKeyboard(lang))
		return
	}

	t.s.Flow = session.FlowApply
	t.s.EditMode = true
	t.s.QuestionIndex = n - 1
	q, _ := t.s.CurrentQuestion()
	t.say(hiring.EditPreview(t.s.Answers[q.Key], lang), nil)
	t.askQuestion()
}

func (t *turn) finalize() {
	lang := t.s.Language
	id, err := t.e.finalizer.Finalize(t.ctx, t.s, t.applicant())
	if err != nil {
		if !errors.Is(err, finalize.ErrPersist) {
			logger.Error(t.ctx, "conv", "application.finalize",
				slog.String("err", err.Error()),
			)
		}
		t.say(hiring.Fill(hiring.ErrorApplicationSaveFailed.Get(lang), "app_id", id), yesNoKeyboard(lang))
		return
	}
	// The finalizer already removed the snapshot.
	t.dirty = false
	t.say(hiring.Fill(hiring.ThankYou.Get(lang), "app_id", id), mainMenuKeyboard(lang))
	if t.e.media.find("codex-logo") != "" {
		t.photo("codex-logo", "", hiring.ConfirmationImageCaption.Get(lang), nil)
	}
}

func (t *turn) voice() {
	lang := t.lang()
	if !t.s.WaitingVoice || !t.s.HasLanguage() || t.s.Flow != session.FlowApply {
		t.say(hiring.ErrorGeneric.Get(lang), mainMenuKeyboard(lang))
		return
	}
	v := t.ev.Voice
	if v == nil || v.FileID == "" {
		t.say(hiring.ErrorVoiceInvalid.Get(lang), backKeyboard(lang))
		return
	}
	if v.Size > MaxVoiceBytes {
		logger.Info(t.ctx, "conv", "voice.rejected",
			slog.String("cause", "too_large"),
			slog.Int64("bytes", v.Size),
		)
		t.say(hiring.ErrorVoiceTooLarge.Get(lang), backKeyboard(lang))
		return
	}

	ext := ".ogg"
	if v.Audio {
		ext = filepath.Ext(v.FileName)
		if ext == "" {
			ext = ".mp3"
		}
	}
	dst := filepath.Join(t.e.voiceDir, fmt.Sprintf("%d_%d%s", t.ev.UserID, t.e.now().Unix(), ext))
	if err := t.e.files.Download(t.ctx, v.FileID, dst); err != nil {
		logger.Warn(t.ctx, "conv", "voice.download",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		t.say(hiring.ErrorVoiceInvalid.Get(lang), backKeyboard(lang))
		return
	}

	t.s.FinishVoiceWait()
	t.s.VoiceFilePath = dst
	t.s.VoiceFileID = v.FileID
	t.s.VoiceMessageID = t.ev.MessageID
	t.s.UserChatID = t.ev.ChatID
	t.s.VoiceSkipped = false
	t.dirty = true
	logger.Info(t.ctx, "conv", "voice.received",
		slog.String("file_id", v.FileID),
		slog.Int("message_id", t.ev.MessageID),
		slog.Int64("bytes", v.Size),
	)
	t.say(hiring.VoiceAck.Get(lang), nil)
	t.confirmation()
}

// expecting returns the current question when the session waits for a
// native share of the given input type.
func (t *turn) expecting(in hiring.InputType) (hiring.Question, bool) {
	if t.s.Flow != session.FlowApply || t.s.WaitingVoice || !t.s.HasLanguage() {
		return hiring.Question{}, false
	}
	q, ok := t.s.CurrentQuestion()
	if !ok || q.Input != in {
		return hiring.Question{}, false
	}
	return q, true
}

func (t *turn) contactShared() {
	q, ok := t.expecting(hiring.InputContact)
	if !ok {
		return
	}
	c := t.ev.Contact
	if c == nil || c.Phone == "" {
		t.reject(q, hiring.ErrorContactInvalid.Get(t.lang()))
		return
	}
	value := hiring.ContactAnswer(c.Phone, c.FirstName, c.LastName)
	t.s.SetAnswer(q.Key, &value)
	t.dirty = true
	t.sayL(hiring.ContactSharedAck, nil)
	t.advance()
}

func (t *turn) locationShared() {
	q, ok := t.expecting(hiring.InputLocation)
	if !ok {
		return
	}
	loc := t.ev.Location
	if loc == nil {
		t.reject(q, hiring.ErrorLocationInvalid.Get(t.lang()))
		return
	}
	value := hiring.LocationAnswer(loc.Lat, loc.Lon)
	t.s.SetAnswer(q.Key, &value)
	t.dirty = true
	t.sayL(hiring.LocationSharedAck, nil)
	t.advance()
}

// validate checks a typed answer and returns the warning to show when it is
// rejected.
func validate(q hiring.Question, text string) (i18n.Text, bool) {
	switch {
	case !hiring.WithinLength(text, hiring.MaxAnswerLength):
		return hiring.ErrorTextTooLong, false
	case q.Key == hiring.KeyEmail && !hiring.ValidEmail(text):
		return hiring.ErrorEmailInvalid, false
	case q.Input == hiring.InputContact && !hiring.ValidPhone(text):
		return hiring.ErrorContactInvalid, false
	case q.Input == hiring.InputLocation && !hiring.ValidLocation(text):
		return hiring.ErrorLocationInvalid, false
	case q.Key == hiring.KeyPortfolio && !hiring.ValidPortfolio(text):
		return hiring.ErrorURLInvalid, false
	}
	return i18n.Text{}, true
}
