package bot

// User-facing texts. The audience is Uzbek-speaking, matching the channel the
// bot serves; answers themselves come back in whatever language the user asked.
const (
	msgWelcome = "Assalomu alaykum! 👨‍⚖️\n\n" +
		"Men O'zbekiston qonunchiligi bo'yicha yurist yordamchi botman. " +
		"Menga huquqiy savolingizni yozing — tegishli kodeks va moddalarga tayangan holda javob beraman.\n\n" +
		"Murakkab yoki aniq vaziyatlarda albatta advokat bilan maslahatlashing."

	msgHelp = "Huquqiy savolingizni oddiy matn bilan yozing.\n" +
		"Men O'zbekiston qonunchiligi asosida javob beraman va iloji bo'lsa kodeks hamda moddani ko'rsataman."

	msgSubscribePrompt = "Botdan foydalanish uchun avval kanalimizga obuna bo'ling, " +
		"so'ngra savolingizni qayta yuboring."

	btnSubscribe = "📢 Kanalga obuna bo'lish"

	// The %d is the configured daily limit.
	msgQuotaExceededFmt = "Kechirasiz, kunlik limitga yetdingiz (%d ta savol). " +
		"Ertaga yana murojaat qilishingiz mumkin."

	// The %s is the channel handle offered as a human support contact.
	// The first sentence matches the bot's historical error reply.
	msgErrorFmt = "Хатолик юз берди. Илтимос, саволингизни қайта юборинг.\n" +
		"Muammo takrorlansa, %s kanali orqali murojaat qiling."

	replySeparator = "— — —"
)
