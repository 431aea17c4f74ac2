// Package ai answers free-form questions through a chat completion model
// when no scripted reply fits.
package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/i18n"
)

const (
	DefaultModel   = "gpt-4o-mini"
	MinTimeout     = 10 * time.Second
	MaxTimeout     = 15 * time.Second
	maxReplyTokens = 350
	temperature    = 0.3
)

var systemPrompts = i18n.L(
	"You are Codexs, a bilingual (English/Farsi) automation studio assistant. "+
		"Always keep responses concise, confident, and actionable. "+
		"If a user asks for something the bot cannot do, guide them toward the closest supported flow "+
		"(Apply, About, Updates, Contact) or suggest typing /menu. "+
		"Never invent new features or promises. "+
		"When replying in English, use polished yet simple HTML (bold/italic) sparingly.",
	"شما دستیار دوزبانه Codexs هستید. پاسخ‌ها باید کوتاه، دقیق و حرفه‌ای باشند. "+
		"اگر کاربر چیزی خارج از توانایی‌های ربات خواست، او را به نزدیک‌ترین بخش موجود "+
		"راهنمایی کنید (درخواست همکاری، درباره، به‌روزرسانی‌ها، تماس) یا بگویید /menu را تایپ کند. "+
		"هیچ قابلیتی را اختراع نکنید و از لحن مینیمال استفاده کنید.",
)

// Responder produces a reply for a user message. ok is false when there is
// nothing to say: disabled, timed out, failed or empty.
type Responder interface {
	Reply(ctx context.Context, lang i18n.Language, contextText, userText string) (reply string, ok bool)
}

// Disabled never replies.
type Disabled struct{}

func (Disabled) Reply(context.Context, i18n.Language, string, string) (string, bool) {
	return "", false
}

// completer is the part of the OpenAI client used here.
type completer interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI calls the chat completions endpoint.
type OpenAI struct {
	chat    completer
	model   string
	timeout time.Duration
}

// Options configure NewOpenAI.
type Options struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ClampTimeout keeps the request budget within 10 to 15 seconds.
func ClampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return MaxTimeout
	case d < MinTimeout:
		return MinTimeout
	case d > MaxTimeout:
		return MaxTimeout
	}
	return d
}

// NewOpenAI returns a responder, or Disabled when no key is configured.
func NewOpenAI(opts Options) Responder {
	if strings.TrimSpace(opts.APIKey) == "" {
		return Disabled{}
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey), option.WithMaxRetries(0)}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	client := openai.NewClient(reqOpts...)
	return newOpenAI(&client.Chat.Completions, opts.Model, opts.Timeout)
}

func newOpenAI(chat completer, model string, timeout time.Duration) *OpenAI {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &OpenAI{chat: chat, model: model, timeout: ClampTimeout(timeout)}
}

var errNoChoices = errors.New("ai: no choices returned")

func (o *OpenAI) Reply(ctx context.Context, lang i18n.Language, contextText, userText string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	prompt := strings.TrimSpace(contextText) + "\n\nUser message:\n" + strings.TrimSpace(userText)
	start := time.Now()
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompts.Get(lang)),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxReplyTokens),
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errNoChoices
	}
	if err != nil {
		logger.Warn(ctx, "ai", "ai.reply",
			slog.String("status", "fail"),
			slog.String("lang", string(lang)),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return "", false
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	logger.Info(ctx, "ai", "ai.reply",
		slog.String("status", logger.Status(nil)),
		slog.String("lang", string(lang)),
		slog.Int("chars", len([]rune(reply))),
		slog.Duration("duration", logger.Took(start)),
	)
	return reply, reply != ""
}
