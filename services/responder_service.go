package services

import (
	"strings"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/config"
)

// Canned replies for simple social utterances. No AI provider is contacted
// for these.
const (
	replyGreeting = "Assalomu alaykum! Men O'zbekiston qonunchiligi bo'yicha yurist yordamchi botman. Huquqiy savolingizni yozib yuboring."
	replyThanks   = "Arzimaydi! Yana huquqiy savollaringiz bo'lsa, bemalol yozing."
	replyFarewell = "Xayr! Savollaringiz paydo bo'lsa, qaytib keling."
)

// ResponderService produces fixed replies for simple social utterances.
type ResponderService interface {
	// Respond returns the canned reply for the first matching sub-vocabulary
	// (greeting, then thanks, then farewell). ok is false when none matches;
	// the caller must then fall through to default handling.
	Respond(text string) (reply string, ok bool)
}

type responderService struct {
	vocab config.VocabularyConfig
}

// NewResponderService creates a responder over the configured vocabularies.
func NewResponderService(vocab config.VocabularyConfig) ResponderService {
	return &responderService{vocab: vocab}
}

func (s *responderService) Respond(text string) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, s.vocab.Greetings):
		return replyGreeting, true
	case containsAny(lower, s.vocab.Thanks):
		return replyThanks, true
	case containsAny(lower, s.vocab.Farewells):
		return replyFarewell, true
	}
	return "", false
}
