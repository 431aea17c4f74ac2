package hiring

import (
	"strings"

	"github.com/codexs/hirebot/internal/i18n"
)

var l = i18n.L[string]

// Fill substitutes {key} placeholders in tpl with the given key/value pairs.
func Fill(tpl string, kv ...string) string {
	if len(kv) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{"+kv[i]+"}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// Language selection and landing.
var (
	LanguageButtons = l("🇬🇧 English", "🇮🇷 فارسی")

	BilingualWelcome = "Select your language to continue · زبان خود را برای ادامه انتخاب کنید"

	LanguagePrompt = l(
		"Tap a language below to continue.",
		"لطفاً یکی از زبان‌ها را از دکمه‌های زیر انتخاب کنید.",
	)

	LanguageReminder = l(
		"Please select a language with the buttons below.",
		"لطفاً با دکمه‌های زیر زبان را انتخاب کنید.",
	)

	WelcomeMessage = l(
		"Welcome to <b>Codexs</b> — global automation studio.\n"+
			"Tell me what you'd like to do and I'll guide you.",
		"به <b>Codexs</b> خوش آمدید — استودیوی جهانی اتوماسیون.\n"+
			"بفرمایید به دنبال چه هستید تا راهنمایی‌تان کنم.",
	)

	LandingCardCaption = "<b>Codexs · Global automation studio</b>\n" +
		"Apply for remote roles, explore AI launches, and reach our team across time zones.\n\n" +
		"<b>Codexs · استودیوی جهانی اتوماسیون</b>\n" +
		"برای موقعیت‌های دورکار اقدام کنید، پروژه‌های هوشمند را ببینید و با تیم در تماس باشید."
)

// Resume prompt.
var (
	ResumePrompt = l(
		"📋 <b>Incomplete Application Found</b>\n\n"+
			"You have an incomplete application with {progress} questions answered.\n\n"+
			"Would you like to resume where you left off?",
		"📋 <b>درخواست ناتمام یافت شد</b>\n\n"+
			"شما یک درخواست ناتمام با {progress} سؤال پاسخ داده شده دارید.\n\n"+
			"آیا می‌خواهید از جایی که متوقف شدید ادامه دهید؟",
	)
	ResumeYes = l("✅ Yes, resume application", "✅ بله، ادامه درخواست")
	ResumeNo  = l("🔄 No, start fresh", "🔄 خیر، شروع جدید")
)

// Generic buttons.
var (
	BackToMenu          = l("⬅️ Back to main menu", "⬅️ بازگشت به منوی اصلی")
	YesLabel            = l("✅ Yes", "✅ بله")
	NoLabel             = l("♻️ No, edit", "♻️ خیر، ویرایش")
	SkipLabel           = l("Skip", "رد کردن")
	SkippedText         = l("(skipped)", "(رد شده)")
	ShareContactButton  = l("📱 Share my Telegram contact", "📱 اشتراک‌گذاری مخاطب تلگرام")
	ShareLocationButton = l("📍 Share my location", "📍 اشتراک‌گذاری موقعیت مکانی")
	ContactSharedAck    = l("✅ Contact received! Moving to the next question.", "✅ مخاطب دریافت شد! به سؤال بعدی می‌رویم.")
	LocationSharedAck   = l("✅ Location received! Moving to the next question.", "✅ موقعیت دریافت شد! به سؤال بعدی می‌رویم.")
	ViewRolesYes        = l("✅ Yes, show me open roles", "✅ بله، فرصت‌های شغلی را نشان بده")
	ViewRolesNo         = l("⬅️ Back to main menu", "⬅️ بازگشت به منوی اصلی")
	ContactSendButton   = l("📤 Send message", "📤 ارسال پیام")
	ContactEditButton   = l("✏️ Edit message", "✏️ ویرایش پیام")
)

// Menu labels and topic titles, keyed by menu item.
var (
	MenuApply   = l("💼 Apply for jobs", "💼 ارسال درخواست همکاری")
	MenuAbout   = l("🏢 About Codex", "🏢 درباره Codex")
	MenuUpdates = l("📢 Updates & news", "📢 به‌روزرسانی‌ها و خبرها")
	MenuContact = l("📞 Contact & support", "📞 تماس و پشتیبانی")
	MenuHistory = l("📋 My applications", "📋 درخواست‌های من")
	MenuSwitch  = l("🔁 Switch to فارسی", "🔁 تغییر به English")

	TopicApply   = l("applications and open roles", "فرم درخواست و موقعیت‌های شغلی")
	TopicAbout   = l("Codexs profile", "معرفی Codexs")
	TopicUpdates = l("news and launches", "خبرها و لانچ‌ها")
	TopicContact = l("contact and support", "تماس و پشتیبانی")
	TopicHistory = l("application history", "تاریخچه درخواست‌ها")

	MainMenuPrompt = l("Main menu · Pick a focus area.", "منوی اصلی · یکی از بخش‌ها را انتخاب کنید.")
	MenuHelper     = l(
		"Use the blue buttons below. Tap ⬅️ Back to main menu anytime.",
		"از دکمه‌های آبی زیر استفاده کنید و هر لحظه می‌توانید ⬅️ بازگشت به منوی اصلی را بزنید.",
	)
)

// Application flow.
var (
	HiringIntro = l(
		"<b>💼 Codexs</b>\n\n"+
			"This form has <b>12 short questions</b> (~3 minutes)\n"+
			"Plus a mandatory <b>English voice test</b>\n\n"+
			"🔒 Your answers stay confidential with the Codexs hiring team\n"+
			"✅ You can edit before final submission",
		"<b>💼 Codexs</b>\n\n"+
			"این فرم <b>۱۲ سؤال کوتاه</b> دارد (حدود ۳ دقیقه)\n"+
			"به اضافه <b>تست صوتی انگلیسی اجباری</b>\n\n"+
			"🔒 پاسخ‌ها نزد تیم استخدام Codexs محرمانه می‌ماند\n"+
			"✅ قبل از ارسال نهایی می‌توانید ویرایش کنید",
	)

	QuestionProgress = l("Question {current}/{total}", "سؤال {current}/{total}")

	MissingAnswer = l(
		"Please share a short answer so we can continue.\n"+
			"Need to stop? Tap ⬅️ Back or type /menu.",
		"لطفاً یک پاسخ کوتاه بدهید تا ادامه دهیم.\n"+
			"اگر می‌خواهید خارج شوید، ⬅️ بازگشت یا ‎/menu‎ را بزنید.",
	)

	SummaryHeader = l("Here is the summary of the data we captured:", "خلاصه اطلاعات ثبت‌شده:")
	ConfirmPrompt = l("Is everything correct?", "آیا همه موارد درست است؟")

	EditPrompt = l(
		"Please share the question number (1-12) you would like to edit.\n\n"+
			"💡 <b>Tip:</b> You can also re-record your voice sample by selecting 13.\n\n"+
			"💬 <b>Cancel:</b> Use 'Back to main menu' to cancel editing and return to confirmation.",
		"لطفاً شماره سوال موردنظر برای ویرایش (۱ تا ۱۲) را بفرستید.\n\n"+
			"💡 <b>نکته:</b> می‌توانید نمونه صوتی خود را دوباره ضبط کنید با انتخاب ۱۳.\n\n"+
			"💬 <b>لغو:</b> از 'بازگشت به منوی اصلی' برای لغو ویرایش و بازگشت به تأیید استفاده کنید.",
	)

	InvalidEdit = l(
		"I couldn't match that number. Please send a value between 1 and 13 (13 = re-record voice).",
		"شماره معتبر نیست. لطفاً عددی بین ۱ تا ۱۳ بفرستید (۱۳ = ضبط مجدد صدا).",
	)

	EditCurrentAnswer = l("<b>📝 Current answer:</b> <i>{value}</i>\n\n<b>Enter your new answer:</b>", "<b>📝 پاسخ فعلی:</b> <i>{value}</i>\n\n<b>پاسخ جدید را وارد کنید:</b>")

	EditSummaryHeader = l("<b>📋 Current Answers:</b>", "<b>📋 پاسخ‌های فعلی:</b>")
	EditSummaryTip    = l("<i>Select a number to edit that answer.</i>", "<i>شماره پاسخ موردنظر را برای ویرایش انتخاب کنید.</i>")
	EditSummaryVoice  = l("Re-record voice sample", "ضبط مجدد نمونه صوتی")

	RerecordVoicePrompt = l(
		"You've chosen to re-record your voice sample.\n\n"+
			"Please record and send a new English voice message.",
		"شما انتخاب کرده‌اید که نمونه صوتی خود را دوباره ضبط کنید.\n\n"+
			"لطفاً یک پیام صوتی انگلیسی جدید ضبط و ارسال کنید.",
	)

	ThankYou = l(
		"All set! Your application has been submitted.\n\n"+
			"📋 <b>Application ID:</b> {app_id}\n\n"+
			"The Codexs hiring team will review your profile and reach out via email or Telegram within <b>1-2 business days</b>.\n\n"+
			"You can now return to the main menu to explore other sections.",
		"همه چیز ثبت شد! درخواست شما ارسال شد.\n\n"+
			"📋 <b>شناسه درخواست:</b> {app_id}\n\n"+
			"تیم استخدام Codexs پروفایل شما را بررسی می‌کند و ظرف <b>۱ تا ۲ روز کاری</b> از طریق ایمیل یا تلگرام تماس می‌گیرد.\n\n"+
			"اکنون می‌توانید به منوی اصلی برگردید و سایر بخش‌ها را بررسی کنید.",
	)

	ConfirmationImageCaption = l(
		"Thank you for applying to Codexs. We'll be in touch soon.",
		"از درخواست شما متشکریم. به زودی با شما تماس خواهیم گرفت.",
	)
)

// VoiceSampleText is read aloud by the applicant.
const VoiceSampleText = "At Codexs, we build intelligent automation systems for global teams. " +
	"Every project requires clear communication, async collaboration, and proactive problem-solving. " +
	"Remote work demands precision in written updates and spoken English. " +
	"Our engineers, designers, and operators coordinate across multiple time zones daily."

// Voice sample.
var (
	VoicePrompt = l(
		"<b>📣 English Voice Test (Required)</b>\n\n"+
			"Why this matters: Codexs works with global teams. Clear English communication is essential for remote collaboration, daily standups, and client interactions.\n\n"+
			"What to do: Read the text below out loud and send a voice message.\n\n"+
			"<i>\""+VoiceSampleText+"\"</i>\n\n"+
			"⏱ Duration: 30-45 seconds\n"+
			"🎯 We evaluate: clarity, fluency, pronunciation\n\n"+
			"💡 Tip: Speak naturally and at a comfortable pace.",
		"<b>📣 تست صوتی انگلیسی (اجباری)</b>\n\n"+
			"چرا مهم است: Codexs با تیم‌های جهانی کار می‌کند. ارتباط واضح به انگلیسی برای همکاری از راه دور، جلسات روزانه و تعامل با مشتری ضروری است.\n\n"+
			"چه کاری انجام دهید: متن زیر را با صدای بلند بخوانید و یک پیام صوتی ارسال کنید.\n\n"+
			"<i>\""+VoiceSampleText+"\"</i>\n\n"+
			"⏱ مدت زمان: ۳۰-۴۵ ثانیه\n"+
			"🎯 ما ارزیابی می‌کنیم: وضوح، روانی، تلفظ\n\n"+
			"💡 نکته: به صورت طبیعی و با سرعت راحت صحبت کنید.",
	)

	VoiceAck = l(
		"Voice sample received and stored for the hiring team. ✅",
		"نمونه صدای شما دریافت و برای تیم استخدام ذخیره شد. ✅",
	)

	VoiceWaitingReminder = l(
		"<b>⏳ Voice recording required</b>\n\n"+
			"Please record and send your English voice sample.\n"+
			"This is <b>mandatory</b> to complete your application.\n\n"+
			"Or tap ⬅️ Back to cancel and return to main menu.",
		"<b>⏳ ضبط صدا الزامی است</b>\n\n"+
			"لطفاً نمونه صوتی انگلیسی خود را ضبط و ارسال کنید.\n"+
			"این بخش برای تکمیل درخواست شما <b>اجباری</b> است.\n\n"+
			"یا روی ⬅️ بازگشت بزنید تا لغو کنید و به منوی اصلی برگردید.",
	)

	VoiceStatusLine     = l("- Voice sample: {status}", "- نمونه صدا: {status}")
	VoiceStatusReceived = l("✅ received", "✅ دریافت شد")
	VoiceStatusPending  = l("Pending", "در انتظار")
	VoiceStatusSkipped  = l("Skipped (team may request later)", "رد شده (ممکن است بعداً درخواست شود)")
)

// About and updates sections.
var (
	AboutCTA = l("Would you like to view open roles?", "مایلید فرصت‌های شغلی باز را ببینید؟")

	UpdatesCTA  = l("More launches:", "اطلاعات بیشتر:")
	UpdatesLink = "https://codexs.ai"

	NoUpdates = l(
		"📢 No updates available at the moment.\n\nCheck back later or visit {link} for the latest news.",
		"📢 در حال حاضر به‌روزرسانی‌ای موجود نیست.\n\nبعداً بررسی کنید یا برای آخرین اخبار به {link} سر بزنید.",
	)
)

// Contact flow.
var (
	ContactInfo = l(
		"You can email contact@codexs.ai or visit https://codexs.ai.\n"+
			"Would you like to send a short message here?",
		"می‌توانید به contact@codexs.ai ایمیل بزنید یا به https://codexs.ai سر بزنید.\n"+
			"مایلید همین‌جا پیام کوتاهی بگذارید؟",
	)
	ContactThanks = l(
		"✅ Message saved for the Codexs ops team.\n\n"+
			"We'll review your message and respond within <b>1-2 business days</b> via email or Telegram.",
		"✅ پیام شما برای تیم عملیات Codexs ثبت شد.\n\n"+
			"پیام شما را بررسی می‌کنیم و ظرف <b>۱ تا ۲ روز کاری</b> از طریق ایمیل یا تلگرام پاسخ می‌دهیم.",
	)
	ContactSkip = l(
		"No worries. Let me know if you need anything else.",
		"اشکالی ندارد. اگر مورد دیگری بود حتماً بگویید.",
	)
	ContactDecisionReminder = l(
		"Please tap Yes or No so I know whether to collect a message.",
		"لطفاً دکمه بله یا خیر را بزنید تا بدانم باید پیام بگیرم یا خیر.",
	)
	ContactMessagePrompt = l(
		"Great — type your message. A human teammate will read it shortly.",
		"عالی، لطفاً پیام خود را بنویسید. یکی از اعضای تیم به‌زودی آن را می‌خواند.",
	)
	ContactMessageReview = l(
		"<b>📝 Review your message</b>\n\n{message}\n\nSend it to the Codexs team or edit it first?",
		"<b>📝 پیام خود را بررسی کنید</b>\n\n{message}\n\nپیام برای تیم Codexs ارسال شود یا ابتدا ویرایش می‌کنید؟",
	)
	ContactSharedNotification = l("📞 New contact message", "📞 پیام جدید")
)

// Fallbacks and help.
var (
	FallbackMessage = l(
		"I couldn't understand that. Here are your options:\n\n"+
			"• Use the buttons below to navigate\n"+
			"• Type /menu to return to main menu\n"+
			"• Type /help for context-aware assistance\n"+
			"• Type /commands to see all available commands",
		"نتوانستم درخواست شما را درک کنم. گزینه‌های شما:\n\n"+
			"• از دکمه‌های زیر برای ناوبری استفاده کنید\n"+
			"• /menu را بزنید تا به منوی اصلی برگردید\n"+
			"• /help را بزنید برای راهنمایی\n"+
			"• /commands را بزنید تا همه دستورات را ببینید",
	)
	SmartFallbackHint = l(
		"It sounds like you need <b>{topic}</b>. I’ll open that section for you.",
		"به نظر می‌رسد دنبال <b>{topic}</b> هستید. همان بخش را برایتان باز می‌کنم.",
	)
	AIRateLimitMessage = l(
		"⚠️ I’m handling a lot right now. Please use the menu or try again shortly.",
		"⚠️ در حال پاسخ‌گویی زیاد هستم. لطفاً از منو استفاده کنید یا چند لحظه بعد دوباره تلاش کنید.",
	)
	RateLimitMessage = l(
		"⚠️ Too many requests. Please wait a moment and try again.",
		"⚠️ درخواست‌های زیادی ارسال شده. لطفاً کمی صبر کنید و دوباره تلاش کنید.",
	)
	HelpText = l(
		"I can help you:\n"+
			"• Apply for Codexs roles\n"+
			"• Learn about the studio\n"+
			"• Read updates & news\n"+
			"• Send a contact message\n\n"+
			"Commands: /start · /menu · /help · /commands",
		"می‌توانم کمک کنم:\n"+
			"• ارسال درخواست همکاری Codexs\n"+
			"• آشنایی با استودیو\n"+
			"• دیدن خبرها و به‌روزرسانی‌ها\n"+
			"• ارسال پیام برای تیم\n\n"+
			"دستورات: ‎/start · ‎/menu · ‎/help · ‎/commands",
	)
	HelpTextApply = l(
		"You're in the <b>application flow</b>.\n\n"+
			"• Answer each question one by one\n"+
			"• Use buttons when available\n"+
			"• Voice recording is mandatory\n"+
			"• You can edit answers before submitting\n\n"+
			"Type /menu to cancel and return to main menu.",
		"شما در <b>فرم درخواست</b> هستید.\n\n"+
			"• به هر سؤال یکی یکی پاسخ دهید\n"+
			"• از دکمه‌ها استفاده کنید\n"+
			"• ضبط صدا اجباری است\n"+
			"• می‌توانید قبل از ارسال ویرایش کنید\n\n"+
			"دستور /menu را برای لغو و بازگشت به منوی اصلی بفرستید.",
	)
	HelpTextVoice = l(
		"You need to <b>record a voice message</b>.\n\n"+
			"• Read the English text provided\n"+
			"• Record 30-45 seconds\n"+
			"• Send as a voice message (not audio file)\n\n"+
			"This is mandatory to complete your application.",
		"شما باید <b>یک پیام صوتی ضبط کنید</b>.\n\n"+
			"• متن انگلیسی ارائه شده را بخوانید\n"+
			"• ۳۰-۴۵ ثانیه ضبط کنید\n"+
			"• به عنوان پیام صوتی ارسال کنید (نه فایل صوتی)\n\n"+
			"این بخش برای تکمیل درخواست شما اجباری است.",
	)
	CommandsText = l(
		"<b>Command palette</b>\n"+
			"/start – Restart and choose a language\n"+
			"/menu – Jump back to the main menu\n"+
			"/help – Context-aware tips\n"+
			"/status – Check your latest application\n"+
			"/commands – Show this list",
		"<b>فهرست دستورات</b>\n"+
			"/start – شروع دوباره و انتخاب زبان\n"+
			"/menu – بازگشت به منوی اصلی\n"+
			"/help – راهنمای متناسب با وضعیت شما\n"+
			"/status – وضعیت آخرین درخواست شما\n"+
			"/commands – نمایش همین فهرست",
	)
)

// Exit confirmation.
var (
	ExitConfirmPrompt = l(
		"You have an in-progress flow. Exit and discard it?",
		"یک فرم در حال تکمیل دارید. می‌خواهید خارج شوید و آن را حذف کنید؟",
	)
	ExitConfirmCancel = l("No problem. Let’s continue where we left off.", "اشکالی ندارد. ادامه می‌دهیم.")
	ExitConfirmDone   = l("Draft cleared. Returning to main menu.", "پیش‌نویس پاک شد. به منوی اصلی برمی‌گردیم.")
)

// Errors.
var (
	ErrorVoiceTooLarge = l(
		"⚠️ Voice file is too large (max 20MB).\n"+
			"Please record a shorter message (30-45 seconds) and try again.",
		"⚠️ فایل صوتی خیلی بزرگ است (حداکثر ۲۰ مگابایت).\n"+
			"لطفاً پیام کوتاه‌تری ضبط کنید (۳۰-۴۵ ثانیه) و دوباره تلاش کنید.",
	)
	ErrorTextTooLong = l(
		"⚠️ Your message is too long. Maximum length is 1000 characters. Please shorten your response.",
		"⚠️ پیام شما خیلی طولانی است. حداکثر طول ۱۰۰۰ کاراکتر است. لطفاً پاسخ خود را کوتاه کنید.",
	)
	ErrorVoiceInvalid = l(
		"⚠️ Unable to process this audio file. Please send a voice message (not a file) and try again.",
		"⚠️ نمی‌توانم این فایل صوتی را پردازش کنم. لطفاً یک پیام صوتی (نه فایل) ارسال کنید و دوباره تلاش کنید.",
	)
	ErrorEmailInvalid = l(
		"⚠️ Please enter a valid email address (e.g., name@example.com).\n"+
			"Use the standard format or tap ⬅️ Back / type /menu to exit this form.",
		"⚠️ لطفاً یک آدرس ایمیل معتبر وارد کنید (مثال: name@example.com).\n"+
			"آدرس را با فرمت استاندارد بنویسید یا با ⬅️ بازگشت / دستور ‎/menu‎ فرم را ترک کنید.",
	)
	ErrorContactInvalid = l(
		"⚠️ Please enter a valid phone number with country code.\n"+
			"Example: +1 234 567 8900 or +98 912 345 6789\n"+
			"Or use the 📱 Share Contact button above.",
		"⚠️ لطفاً شماره تلفن معتبر با کد کشور وارد کنید.\n"+
			"مثال: +1 234 567 8900 یا +98 912 345 6789\n"+
			"یا از دکمه 📱 اشتراک مخاطب استفاده کنید.",
	)
	ErrorLocationInvalid = l(
		"⚠️ Please enter location in format: City, Country (Timezone)\n"+
			"Example: Tehran, Iran (UTC+3:30) or New York, USA (EST)\n"+
			"Or use the 📍 Share Location button above.",
		"⚠️ لطفاً موقعیت را به فرمت: شهر، کشور (منطقه زمانی) بنویسید\n"+
			"مثال: تهران، ایران (UTC+3:30) یا نیویورک، آمریکا (EST)\n"+
			"یا از دکمه 📍 اشتراک موقعیت استفاده کنید.",
	)
	ErrorURLInvalid = l(
		"⚠️ Please enter a valid URL or portfolio link.\n"+
			"Examples: https://github.com/username, https://behance.net/portfolio, or your website URL.",
		"⚠️ لطفاً یک لینک معتبر یا آدرس پورتفولیو وارد کنید.\n"+
			"مثال: https://github.com/username، https://behance.net/portfolio یا آدرس وب‌سایت شما.",
	)
	ErrorGeneric = l(
		"⚠️ Something went wrong. Please try again or use /menu to return to the main menu.",
		"⚠️ مشکلی پیش آمد. لطفاً دوباره تلاش کنید یا از /menu برای بازگشت به منوی اصلی استفاده کنید.",
	)
	ErrorApplicationSaveFailed = l(
		"⚠️ We couldn't save your application (ID {app_id}).\n\n"+
			"Your answers are still here. Please tap ✅ Yes to try submitting again in a moment.",
		"⚠️ ذخیره درخواست شما (شناسه {app_id}) انجام نشد.\n\n"+
			"پاسخ‌های شما محفوظ است. لطفاً چند لحظه بعد دوباره ✅ بله را بزنید تا ارسال تکرار شود.",
	)
)

// Application history and status.
var (
	HistoryHeader = l("<b>📋 Your Applications</b>", "<b>📋 درخواست‌های شما</b>")
	HistoryEmpty  = l(
		"You haven't submitted any applications yet.\n\nUse 💼 Apply for jobs to get started!",
		"شما هنوز درخواستی ارسال نکرده‌اید.\n\nاز 💼 ارسال درخواست همکاری استفاده کنید تا شروع کنید!",
	)
	HistoryItem = l(
		"<b>Application {number}</b>\n"+
			"🆔 ID: {app_id}\n"+
			"📅 Submitted: {date}\n"+
			"👤 Name: {name}\n"+
			"📧 Email: {email}\n"+
			"🎤 Voice: {voice_status}",
		"<b>درخواست {number}</b>\n"+
			"🆔 شناسه: {app_id}\n"+
			"📅 ارسال شده: {date}\n"+
			"👤 نام: {name}\n"+
			"📧 ایمیل: {email}\n"+
			"🎤 صدا: {voice_status}",
	)
	HistoryTruncated  = l("<i>Showing 10 most recent applications. Total: {total}</i>", "<i>نمایش ۱۰ درخواست اخیر. مجموع: {total}</i>")
	HistoryVoiceOK    = l("✅ Received", "✅ دریافت شد")
	HistoryVoiceSkip  = l("⚠️ Skipped", "⚠️ رد شده")
	StatusHeader      = l("📊 <b>Application Status</b>", "📊 <b>وضعیت درخواست</b>")
	StatusLatest      = l("🆔 ID: {app_id}\n📅 Submitted: {date}\n📌 Stage: {stage}", "🆔 شناسه: {app_id}\n📅 ارسال شده: {date}\n📌 مرحله: {stage}")
	StatusStageReview = l("Under review by the hiring team", "در حال بررسی توسط تیم استخدام")
	StatusInProgress  = l("📝 You have an application in progress ({answered}/12 answered). Type /menu to continue or start over.", "📝 یک درخواست در حال تکمیل دارید ({answered}/۱۲ پاسخ). برای ادامه یا شروع دوباره /menu را بزنید.")
	StatusNotFound    = l("You haven't submitted an application yet. Tap 💼 Apply for jobs to get started.", "هنوز درخواستی ارسال نکرده‌اید. برای شروع 💼 ارسال درخواست همکاری را بزنید.")
)

// Admin panel.
var (
	AdminAccessDenied = l(
		"⚠️ Admin access denied. This command is only available to administrators.",
		"⚠️ دسترسی ادمین رد شد. این دستور فقط برای مدیران در دسترس است.",
	)
	AdminYourID = l("Your User ID: <code>{user_id}</code>", "شناسه کاربری شما: <code>{user_id}</code>")
	AdminMenu   = l(
		"<b>🔧 Admin Panel</b>\n\n"+
			"Available commands:\n"+
			"/admin – Show this menu\n"+
			"/botstatus – Bot status and health\n"+
			"/stats – Application and user statistics\n"+
			"/debug &lt;user_id&gt; – Debug user session\n"+
			"/sessions – List active sessions\n"+
			"/cleanup – Clean up old session files\n"+
			"/testgroup – Test group notification\n\n"+
			"All commands require admin privileges.",
		"<b>🔧 پنل مدیریت</b>\n\n"+
			"دستورات موجود:\n"+
			"/admin – نمایش این منو\n"+
			"/botstatus – وضعیت و سلامت ربات\n"+
			"/stats – آمار درخواست‌ها و کاربران\n"+
			"/debug &lt;user_id&gt; – اشکال‌زدایی جلسه کاربر\n"+
			"/sessions – لیست جلسات فعال\n"+
			"/cleanup – پاکسازی فایل‌های جلسه قدیمی\n"+
			"/testgroup – تست اعلان گروه\n\n"+
			"همه دستورات نیاز به دسترسی ادمین دارند.",
	)
	AdminStatus = l(
		"<b>🤖 Bot Status</b>\n\n"+
			"✅ Bot is running\n"+
			"📊 Applications: {app_count}\n"+
			"💬 Contact messages: {contact_count}\n"+
			"💾 Active sessions: {session_count}\n"+
			"🎤 Voice samples: {voice_count}\n\n"+
			"Last updated: {timestamp}",
		"<b>🤖 وضعیت ربات</b>\n\n"+
			"✅ ربات در حال اجرا است\n"+
			"📊 درخواست‌ها: {app_count}\n"+
			"💬 پیام‌های تماس: {contact_count}\n"+
			"💾 جلسات فعال: {session_count}\n"+
			"🎤 نمونه‌های صوتی: {voice_count}\n\n"+
			"آخرین به‌روزرسانی: {timestamp}",
	)
	AdminStats = l(
		"<b>📊 Statistics</b>\n\n"+
			"📝 Total applications: {total_apps}\n"+
			"✅ Completed: {completed_apps}\n"+
			"⏳ Incomplete: {incomplete_apps}\n"+
			"💬 Contact messages: {contact_count}\n"+
			"👥 Unique users: {unique_users}\n"+
			"🌍 Languages:\n"+
			"  • English: {en_count}\n"+
			"  • Farsi: {fa_count}",
		"<b>📊 آمار</b>\n\n"+
			"📝 کل درخواست‌ها: {total_apps}\n"+
			"✅ تکمیل شده: {completed_apps}\n"+
			"⏳ ناتمام: {incomplete_apps}\n"+
			"💬 پیام‌های تماس: {contact_count}\n"+
			"👥 کاربران منحصر به فرد: {unique_users}\n"+
			"🌍 زبان‌ها:\n"+
			"  • انگلیسی: {en_count}\n"+
			"  • فارسی: {fa_count}",
	)
	AdminDebugUser = l(
		"<b>🐛 User Debug Info</b>\n\n"+
			"User ID: {user_id}\n\n"+
			"<b>Session:</b>\n"+
			"Language: {language}\n"+
			"Flow: {flow}\n"+
			"Question: {question_index}/12\n"+
			"Answers: {answer_count}\n"+
			"Waiting voice: {waiting_voice}\n"+
			"Voice skipped: {voice_skipped}\n"+
			"Edit mode: {edit_mode}\n\n"+
			"<b>Applications:</b>\n"+
			"Total: {app_count}",
		"<b>🐛 اطلاعات اشکال‌زدایی کاربر</b>\n\n"+
			"شناسه کاربر: {user_id}\n\n"+
			"<b>جلسه:</b>\n"+
			"زبان: {language}\n"+
			"جریان: {flow}\n"+
			"سؤال: {question_index}/12\n"+
			"پاسخ‌ها: {answer_count}\n"+
			"در انتظار صدا: {waiting_voice}\n"+
			"صدا رد شده: {voice_skipped}\n"+
			"حالت ویرایش: {edit_mode}\n\n"+
			"<b>درخواست‌ها:</b>\n"+
			"کل: {app_count}",
	)
	AdminDebugUsage  = l("Usage: /debug &lt;user_id&gt;", "استفاده: /debug &lt;user_id&gt;")
	AdminNoSession   = l("No saved session for user {user_id}.", "جلسه‌ای برای کاربر {user_id} ذخیره نشده است.")
	AdminSessionList = l(
		"<b>💾 Active Sessions</b>\n\nTotal: {count}\n\n{sessions_list}",
		"<b>💾 جلسات فعال</b>\n\nکل: {count}\n\n{sessions_list}",
	)
	AdminNoSessions   = l("No active sessions found.", "هیچ جلسه فعالی یافت نشد.")
	AdminCleanupDone  = l("🧹 Removed {count} session snapshots older than {days} days.", "🧹 {count} جلسه قدیمی‌تر از {days} روز حذف شد.")
	AdminTestGroupOK  = l("✅ Test notification sent to the group.", "✅ اعلان آزمایشی به گروه ارسال شد.")
	AdminTestGroupOff = l("⚠️ Group chat is not configured.", "⚠️ گروه تنظیم نشده است.")
	AdminTestGroupMsg = "🧪 <b>Test notification</b>\nThe Codexs hiring bot can post to this group."
)

// Group commands.
var (
	GroupOnlyCommand = l(
		"⚠️ This command is only available in group chats.",
		"⚠️ این دستور فقط در چت‌های گروهی در دسترس است.",
	)
	GroupAdminRequired = l(
		"⚠️ This command requires group administrator privileges.",
		"⚠️ این دستور نیاز به دسترسی مدیر گروه دارد.",
	)
	GroupHelpText = l(
		"<b>📊 Group Commands</b>\n\n"+
			"Available commands for group administrators:\n\n"+
			"/daily or /report – Daily report (applications and messages today)\n"+
			"/gstats – Detailed statistics (all-time and by period)\n"+
			"/recent – List recent applications (last 10)\n"+
			"/app &lt;id&gt; – View application details by ID\n"+
			"/ghelp – Show this help message\n\n"+
			"All commands require group administrator privileges.",
		"<b>📊 دستورات گروه</b>\n\n"+
			"دستورات موجود برای مدیران گروه:\n\n"+
			"/daily یا /report – گزارش روزانه (درخواست‌ها و پیام‌های امروز)\n"+
			"/gstats – آمار تفصیلی (همه‌زمان و بر اساس دوره)\n"+
			"/recent – لیست درخواست‌های اخیر (آخرین ۱۰ مورد)\n"+
			"/app &lt;id&gt; – مشاهده جزئیات درخواست با شناسه\n"+
			"/ghelp – نمایش این پیام راهنما\n\n"+
			"همه دستورات نیاز به دسترسی مدیر گروه دارند.",
	)
	GroupDailyReport = l(
		"<b>📊 Daily Report</b>\n\n"+
			"<b>Today ({date})</b>\n"+
			"📝 Applications: {today_apps}\n"+
			"💬 Contact messages: {today_contacts}\n"+
			"🎤 Voice samples: {today_voices} received, {today_skipped} skipped\n"+
			"🌐 Language breakdown: {en_count} EN, {fa_count} FA\n\n"+
			"<b>This Week</b>\n"+
			"📝 Applications: {week_apps}\n"+
			"💬 Contact messages: {week_contacts}\n\n"+
			"<b>This Month</b>\n"+
			"📝 Applications: {month_apps}\n"+
			"💬 Contact messages: {month_contacts}\n\n"+
			"{recent_list}",
		"<b>📊 گزارش روزانه</b>\n\n"+
			"<b>امروز ({date})</b>\n"+
			"📝 درخواست‌ها: {today_apps}\n"+
			"💬 پیام‌های تماس: {today_contacts}\n"+
			"🎤 نمونه‌های صوتی: {today_voices} دریافت شده، {today_skipped} رد شده\n"+
			"🌐 تقسیم‌بندی زبان: {en_count} انگلیسی، {fa_count} فارسی\n\n"+
			"<b>این هفته</b>\n"+
			"📝 درخواست‌ها: {week_apps}\n"+
			"💬 پیام‌های تماس: {week_contacts}\n\n"+
			"<b>این ماه</b>\n"+
			"📝 درخواست‌ها: {month_apps}\n"+
			"💬 پیام‌های تماس: {month_contacts}\n\n"+
			"{recent_list}",
	)
	GroupStatsReport = l(
		"<b>📈 Statistics Report</b>\n\n"+
			"<b>All-Time Totals</b>\n"+
			"📝 Total applications: {total_apps}\n"+
			"💬 Total contact messages: {total_contacts}\n"+
			"👥 Unique applicants: {unique_users}\n"+
			"🎤 Voice samples: {total_voices} received, {total_skipped} skipped\n\n"+
			"<b>Language Breakdown</b>\n"+
			"🇬🇧 English: {en_count} ({en_percent}%)\n"+
			"🇮🇷 Farsi: {fa_count} ({fa_percent}%)\n\n"+
			"<b>By Period</b>\n"+
			"📅 Today: {today_apps} applications\n"+
			"📅 This week: {week_apps} applications\n"+
			"📅 This month: {month_apps} applications\n"+
			"📅 All time: {total_apps} applications",
		"<b>📈 گزارش آمار</b>\n\n"+
			"<b>مجموع همه‌زمان</b>\n"+
			"📝 کل درخواست‌ها: {total_apps}\n"+
			"💬 کل پیام‌های تماس: {total_contacts}\n"+
			"👥 متقاضیان منحصر به فرد: {unique_users}\n"+
			"🎤 نمونه‌های صوتی: {total_voices} دریافت شده، {total_skipped} رد شده\n\n"+
			"<b>تقسیم‌بندی زبان</b>\n"+
			"🇬🇧 انگلیسی: {en_count} ({en_percent}%)\n"+
			"🇮🇷 فارسی: {fa_count} ({fa_percent}%)\n\n"+
			"<b>بر اساس دوره</b>\n"+
			"📅 امروز: {today_apps} درخواست\n"+
			"📅 این هفته: {week_apps} درخواست\n"+
			"📅 این ماه: {month_apps} درخواست\n"+
			"📅 همه‌زمان: {total_apps} درخواست",
	)
	GroupRecentApplications = l(
		"<b>📋 Recent Applications</b>\n\n{applications_list}\n\nTotal shown: {count} of {total}",
		"<b>📋 درخواست‌های اخیر</b>\n\n{applications_list}\n\nنمایش داده شده: {count} از {total}",
	)
	GroupApplicationDetails = l(
		"<b>📄 Application Details</b>\n\n"+
			"<b>Application ID:</b> <code>{application_id}</code>\n"+
			"<b>Submitted:</b> {submitted_at}\n"+
			"<b>Language:</b> {language}\n\n"+
			"<b>Applicant Information</b>\n"+
			"👤 Name: {name}\n"+
			"📧 Email: {email}\n"+
			"📱 Contact: {contact}\n"+
			"🌐 Location: {location}\n"+
			"🔗 Portfolio: {portfolio}\n"+
			"💬 Telegram: @{username} ({telegram_id})\n\n"+
			"<b>Application Answers</b>\n"+
			"{answers}\n\n"+
			"<b>Voice Sample</b>\n"+
			"{voice_status}",
		"<b>📄 جزئیات درخواست</b>\n\n"+
			"<b>شناسه درخواست:</b> <code>{application_id}</code>\n"+
			"<b>ارسال شده:</b> {submitted_at}\n"+
			"<b>زبان:</b> {language}\n\n"+
			"<b>اطلاعات متقاضی</b>\n"+
			"👤 نام: {name}\n"+
			"📧 ایمیل: {email}\n"+
			"📱 تماس: {contact}\n"+
			"🌐 موقعیت: {location}\n"+
			"🔗 نمونه کار: {portfolio}\n"+
			"💬 تلگرام: @{username} ({telegram_id})\n\n"+
			"<b>پاسخ‌های درخواست</b>\n"+
			"{answers}\n\n"+
			"<b>نمونه صوتی</b>\n"+
			"{voice_status}",
	)
	GroupApplicationNotFound = l(
		"❌ Application not found. Please check the application ID.",
		"❌ درخواست یافت نشد. لطفاً شناسه درخواست را بررسی کنید.",
	)
	GroupApplicationItem = l(
		"• <b>{name}</b> ({email})\n  ID: <code>{application_id}</code> | {date} | {language} | {voice_status}",
		"• <b>{name}</b> ({email})\n  شناسه: <code>{application_id}</code> | {date} | {language} | {voice_status}",
	)
	GroupAppUsage = l("Usage: /app &lt;application_id&gt;", "استفاده: /app &lt;application_id&gt;")
	GroupNoRecent = l("No applications yet.", "هنوز درخواستی ثبت نشده است.")
)
