package services

import (
	"strings"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/config"
)

// Classification is the routing category of one inbound utterance.
type Classification int

const (
	// ClassificationDefault routes to the lightweight provider.
	ClassificationDefault Classification = iota
	// ClassificationSimpleSocial is a greeting/thanks/farewell answered without AI.
	ClassificationSimpleSocial
	// ClassificationComplexLegal routes to the serious provider.
	ClassificationComplexLegal
)

// String returns a short label used in logs and chat audit records.
func (c Classification) String() string {
	switch c {
	case ClassificationSimpleSocial:
		return "simple"
	case ClassificationComplexLegal:
		return "complex"
	default:
		return "default"
	}
}

// ClassifierService categorizes inbound text for routing.
type ClassifierService interface {
	Classify(text string) Classification
}

type classifierService struct {
	vocab config.VocabularyConfig
}

// NewClassifierService creates a classifier over the configured vocabularies.
func NewClassifierService(vocab config.VocabularyConfig) ClassifierService {
	if vocab.MaxSimpleWords <= 0 {
		vocab.MaxSimpleWords = 15
	}
	return &classifierService{vocab: vocab}
}

// Classify applies the simple-social test first; a match short-circuits even
// when the text would also match the legal vocabulary.
func (s *classifierService) Classify(text string) Classification {
	lower := strings.ToLower(text)

	if s.isSimpleSocial(lower) {
		return ClassificationSimpleSocial
	}
	if containsAny(lower, s.vocab.LegalTopics) {
		return ClassificationComplexLegal
	}
	return ClassificationDefault
}

// isSimpleSocial requires all three conditions: a social vocabulary match, no
// question marker, and at most MaxSimpleWords words.
func (s *classifierService) isSimpleSocial(lower string) bool {
	social := containsAny(lower, s.vocab.Greetings) ||
		containsAny(lower, s.vocab.Thanks) ||
		containsAny(lower, s.vocab.Farewells)
	if !social {
		return false
	}
	if containsAny(lower, s.vocab.QuestionMarkers) {
		return false
	}
	return len(strings.Fields(lower)) <= s.vocab.MaxSimpleWords
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
