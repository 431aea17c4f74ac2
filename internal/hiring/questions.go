// Package hiring holds the application form: the ordered questions, their
// validators, the localized copy and the HTML renderers used by the
// conversation engine.
package hiring

import "github.com/codexs/hirebot/internal/i18n"

// InputType says which channel a question accepts besides free text.
type InputType string

const (
	InputText     InputType = "text"
	InputContact  InputType = "contact"
	InputLocation InputType = "location"
)

// Question is one step of the hiring form.
type Question struct {
	Key      string
	Prompt   i18n.Text
	Label    i18n.Text
	Keyboard *i18n.Localized[[][]string]
	Optional bool
	Input    InputType
}

// Stable question keys.
const (
	KeyFullName     = "full_name"
	KeyEmail        = "email"
	KeyContact      = "contact"
	KeyLocation     = "location"
	KeyRoleCategory = "role_category"
	KeySkills       = "skills"
	KeyExperience   = "experience"
	KeyPortfolio    = "portfolio"
	KeyStartDate    = "start_date"
	KeyWorkingHours = "working_hours"
	KeyMotivation   = "motivation"
	KeySalary       = "salary"
)

var (
	roleChoices = i18n.L(
		[][]string{{"Engineering", "Design"}, {"Product", "Support"}, {"Marketing", "Other"}},
		[][]string{{"مهندسی", "طراحی"}, {"محصول", "پشتیبانی"}, {"مارکتینگ", "سایر"}},
	)
	experienceChoices = i18n.L(
		[][]string{{"0-1 yrs", "2-4 yrs"}, {"5-7 yrs", "8+ yrs"}},
		[][]string{{"۰-۱ سال", "۲-۴ سال"}, {"۵-۷ سال", "۸+ سال"}},
	)
	shiftChoices = i18n.L(
		[][]string{{"🌅 Morning shift", "🌙 Night shift"}, {"🔄 Flexible / Both"}},
		[][]string{{"🌅 شیفت صبح", "🌙 شیفت شب"}, {"🔄 انعطاف‌پذیر / هر دو"}},
	)
	startDateChoices = i18n.L(
		[][]string{{"Immediately", "Within 2 weeks"}, {"Within 1 month", "Within 2-3 months"}, {"Custom date (type below)"}},
		[][]string{{"فوری", "ظرف ۲ هفته"}, {"ظرف ۱ ماه", "ظرف ۲-۳ ماه"}, {"تاریخ دلخواه (پایین بنویسید)"}},
	)
)

// Questions is the ordered hiring form.
var Questions = []Question{
	{
		Key: KeyFullName,
		Prompt: l(
			"<b>What's your full legal name?</b>\n<i>First and last name as it appears on official documents</i>",
			"<b>نام و نام خانوادگی کامل شما چیست؟</b>\n<i>نام و نام خانوادگی طبق مدارک رسمی</i>",
		),
		Label: l("Full name", "نام و نام خانوادگی"),
		Input: InputText,
	},
	{
		Key: KeyEmail,
		Prompt: l(
			"<b>What's your primary email address?</b>\n<i>We'll use this for all official Codexs communication</i>",
			"<b>آدرس ایمیل اصلی شما چیست؟</b>\n<i>برای تمام ارتباطات رسمی Codexs استفاده می‌شود</i>",
		),
		Label: l("Email", "ایمیل"),
		Input: InputText,
	},
	{
		Key: KeyContact,
		Prompt: l(
			"<b>How can we reach you?</b>\n<i>Tap 📱 Share Contact or type your phone number with country code</i>",
			"<b>چگونه می‌توانیم با شما تماس بگیریم؟</b>\n<i>روی دکمه 📱 اشتراک مخاطب بزنید یا شماره تلفن همراه با کد کشور را بنویسید</i>",
		),
		Label: l("Contact method", "راه ارتباطی"),
		Input: InputContact,
	},
	{
		Key: KeyLocation,
		Prompt: l(
			"<b>Where are you based?</b>\n<i>Tap 📍 Share Location or type: City, Country (Timezone)</i>",
			"<b>کجا زندگی می‌کنید؟</b>\n<i>روی دکمه 📍 اشتراک موقعیت بزنید یا بنویسید: شهر، کشور (منطقه زمانی)</i>",
		),
		Label: l("Location & time zone", "مکان و منطقه زمانی"),
		Input: InputLocation,
	},
	{
		Key: KeyRoleCategory,
		Prompt: l(
			"<b>What's your primary role?</b>\n<i>Select the category that best matches your expertise</i>",
			"<b>نقش اصلی شما چیست؟</b>\n<i>دسته‌ای را انتخاب کنید که بیشتر با تخصص شما مطابقت دارد</i>",
		),
		Label:    l("Role category", "دسته‌بندی نقش"),
		Keyboard: &roleChoices,
		Input:    InputText,
	},
	{
		Key: KeySkills,
		Prompt: l(
			"<b>What are your core skills?</b>\n<i>List technologies, frameworks, or methodologies (comma-separated)</i>\n\nExample: Python, React, AWS, Figma",
			"<b>مهارت‌های اصلی شما کدام‌اند؟</b>\n<i>تکنولوژی‌ها، فریم‌ورک‌ها یا متدولوژی‌ها را لیست کنید (با ویرگول جدا شوند)</i>\n\nمثال: Python, React, AWS, Figma",
		),
		Label: l("Skills / tech stack", "مهارت‌ها / تکنولوژی‌ها"),
		Input: InputText,
	},
	{
		Key: KeyExperience,
		Prompt: l(
			"<b>How many years of relevant experience do you have?</b>\n<i>Select the range that matches your professional background</i>",
			"<b>چند سال سابقه کاری مرتبط دارید؟</b>\n<i>بازه‌ای را انتخاب کنید که با پیشینه حرفه‌ای شما مطابقت دارد</i>",
		),
		Label:    l("Experience", "سابقه"),
		Keyboard: &experienceChoices,
		Input:    InputText,
	},
	{
		Key: KeyPortfolio,
		Prompt: l(
			"<b>Show us your work</b>\n<i>Share a portfolio link, GitHub, Behance, or brief description of past projects</i>",
			"<b>کارهای خود را به ما نشان دهید</b>\n<i>لینک پورتفولیو، GitHub، Behance یا توضیح مختصری از پروژه‌های گذشته بدهید</i>",
		),
		Label: l("Portfolio / work samples", "نمونه‌کارها"),
		Input: InputText,
	},
	{
		Key: KeyStartDate,
		Prompt: l(
			"<b>When can you start?</b>\n<i>Choose your earliest availability or specify a custom date</i>",
			"<b>چه زمانی می‌توانید شروع کنید؟</b>\n<i>زودترین زمان آمادگی خود را انتخاب کنید یا تاریخ دلخواه را مشخص کنید</i>",
		),
		Label:    l("Earliest start date", "زودترین زمان شروع"),
		Keyboard: &startDateChoices,
		Input:    InputText,
	},
	{
		Key: KeyWorkingHours,
		Prompt: l(
			"<b>What's your preferred work shift?</b>\n<i>Choose the schedule that matches your productivity rhythm</i>",
			"<b>شیفت کاری ترجیحی شما چیست؟</b>\n<i>برنامه‌ای را انتخاب کنید که با ریتم بهره‌وری شما هماهنگ است</i>",
		),
		Label:    l("Preferred shift", "شیفت ترجیحی"),
		Keyboard: &shiftChoices,
		Input:    InputText,
	},
	{
		Key: KeyMotivation,
		Prompt: l(
			"<b>Why Codexs?</b>\n<i>What excites you about joining our team? What makes this a strong fit?</i>",
			"<b>چرا Codexs؟</b>\n<i>چه چیزی در مورد پیوستن به تیم ما شما را هیجان‌زده می‌کند؟ چرا این همکاری مناسب است؟</i>",
		),
		Label: l("Motivation", "انگیزه"),
		Input: InputText,
	},
	{
		Key: KeySalary,
		Prompt: l(
			"<b>Salary expectations (Optional)</b>\n<i>Share your expected range in USD/month, or type 'Skip' if you prefer to discuss later</i>",
			"<b>انتظار حقوق (اختیاری)</b>\n<i>بازه مورد انتظار خود را به دلار در ماه بنویسید، یا «رد کردن» بنویسید اگر ترجیح می‌دهید بعداً صحبت کنیم</i>",
		),
		Label:    l("Salary expectations", "انتظار حقوق"),
		Optional: true,
		Input:    InputText,
	},
}

// Count is the number of questions in the form.
var Count = len(Questions)

// ValidKey reports whether key names a form question.
func ValidKey(key string) bool {
	for _, q := range Questions {
		if q.Key == key {
			return true
		}
	}
	return false
}

// Section is a titled block of the about page.
type Section struct {
	Title string
	Body  string
}

// Card is an update card, optionally shown as a photo.
type Card struct {
	Title    string
	Body     string
	CTALabel string
	CTAURL   string
	PhotoURL string
	// LocalPhoto is a file name looked up in the media directory.
	LocalPhoto string
}

var AboutSections = i18n.L(
	[]Section{
		{
			Title: "Mission Control",
			Body: "Codexs builds distributed automation layers for ambitious product, data, and ops teams.\n" +
				"• Hybrid squads of AI engineers, product thinkers, and operators\n" +
				"• 4–6 week launch windows with live telemetry dashboards\n" +
				"• Preferred stack: PyTorch, LangChain, Temporal, Supabase, Svelte",
		},
		{
			Title: "Operating Principles",
			Body: "• Tesla / SpaceX-level quality bar, minimalist comms\n" +
				"• Bilingual workflows (English / Farsi) baked into every artifact\n" +
				"• Humans + agents paired for reliability, traceability, and speed",
		},
		{
			Title: "Proof of Work",
			Body: "• Designed a self-healing data ops mesh for a Middle East fintech\n" +
				"• Launched a multi-agent CX cockpit that triages 1M+ yearly tickets\n" +
				"• Embedded with deep-tech funds to validate AI-native venture bets",
		},
	},
	[]Section{
		{
			Title: "اتاق فرمان",
			Body: "Codexs لایه‌های اتوماسیون توزیع‌شده برای تیم‌های محصول، داده و عملیات می‌سازد.\n" +
				"• اسکادران‌های ترکیبی شامل مهندسان هوش مصنوعی، طراحان محصول و اپراتورها\n" +
				"• پنجره‌های راه‌اندازی ۴ تا ۶ هفته‌ای همراه با داشبورد تله‌متری\n" +
				"• استک محبوب: PyTorch، LangChain، Temporal، Supabase، Svelte",
		},
		{
			Title: "اصول عملکردی",
			Body: "• استاندارد کیفیت در سطح Tesla / SpaceX با ارتباطات مینیمال\n" +
				"• کار دو‌زبانه (انگلیسی / فارسی) در همه مستندات و تحویل‌ها\n" +
				"• همکاری انسان + ایجنت برای پایداری، ردیابی و سرعت",
		},
		{
			Title: "اثبات کار",
			Body: "• ساخت مش داده‌ی خودترمیم برای یک فین‌تک خاورمیانه‌ای\n" +
				"• لانچ کوپیت چندایجنتی پشتیبانی که سالانه بالای ۱ میلیون تیکت را مدیریت می‌کند\n" +
				"• همکاری با صندوق‌های دیپ‌تک برای اعتبارسنجی سرمایه‌گذاری‌های AI-native",
		},
	},
)

const opsPodsPhoto = "https://images.unsplash.com/photo-1487058792275-0ad4aaf24ca7?auto=format&fit=crop&w=1600&q=80"

var UpdateCards = i18n.L(
	[]Card{
		{
			Title: "System X Automation Layer",
			Body: "We shipped a Temporal + LLM mesh that closes the loop on KYC reviews in <4 minutes " +
				"for a regulated fintech. Human supervisors now audit via a single Codexs cockpit.",
			CTALabel: "Read build notes",
			CTAURL:   "https://codexs.ai/case/system-x",
		},
		{
			Title: "Global Ops Pods",
			Body: "New pods spun up in Dubai, Warsaw, and Kuala Lumpur give 24/6 coverage without " +
				"compromising Codexs craft. Every pod pairs PM, AI lead, designer, and automation ops.",
			CTALabel:   "Meet the pods",
			CTAURL:     "https://codexs.ai/ops",
			PhotoURL:   opsPodsPhoto,
			LocalPhoto: "global-ops-pods",
		},
		{
			Title: "Culture Reel 2025",
			Body: "A two-minute reel that shows how we run bilingual standups, async critiques, " +
				"and Tesla-level QA rituals from anywhere on the planet.",
			CTALabel: "Watch the reel",
			CTAURL:   "https://codexs.ai/culture",
		},
	},
	[]Card{
		{
			Title: "لایه اتوماسیون System X",
			Body: "یک مش Temporal + LLM پیاده‌سازی کردیم که بررسی KYC را برای فین‌تکی تحت نظارت " +
				"در کمتر از ۴ دقیقه می‌بندد. ناظران انسانی همه چیز را در یک کوپیت Codexs مشاهده می‌کنند.",
			CTALabel: "یادداشت‌های ساخت",
			CTAURL:   "https://codexs.ai/case/system-x",
		},
		{
			Title: "پادهای عملیات جهانی",
			Body: "پادهای تازه در دبی، ورشو و کوالالامپور راه‌اندازی شد تا پوشش ۶ روزه ۲۴ ساعته " +
				"با همان کیفیت Codexs فراهم شود. هر پاد شامل PM، رهبر AI، طراح و اپراتور اتوماسیون است.",
			CTALabel:   "آشنایی با پادها",
			CTAURL:     "https://codexs.ai/ops",
			PhotoURL:   opsPodsPhoto,
			LocalPhoto: "global-ops-pods",
		},
		{
			Title: "ریل فرهنگ ۲۰۲۵",
			Body: "فیلم دو دقیقه‌ای که نشان می‌دهد استنداپ‌های دو‌زبانه، کریتیک‌های غیرهمزمان " +
				"و روتین‌های QA در سطح تسلا را از هرجای دنیا چگونه اجرا می‌کنیم.",
			CTALabel: "مشاهده ویدیو",
			CTAURL:   "https://codexs.ai/culture",
		},
	},
)

var News = i18n.L(
	[]string{
		"⚡ Released a new AI automation layer for a fintech scale-up.",
		"🌍 Expanded remote squads across EMEA & APAC time zones.",
		"🧠 Hiring senior engineers, designers, and product operators for 2025.",
	},
	[]string{
		"⚡ لایه جدید اتوماسیون هوش مصنوعی برای یک فین‌تک توسعه یافت.",
		"🌍 تیم‌های ریموت در مناطق زمانی EMEA و APAC گسترش یافتند.",
		"🧠 جذب مهندسان، طراحان و مدیران محصول ارشد برای سال ۲۰۲۵ ادامه دارد.",
	},
)
