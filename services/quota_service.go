package services

import (
	"log"
	"sync"
	"time"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/repository"
)

// QuotaService caps how many AI-answered messages a user may receive per
// calendar day. The day is derived from the wall clock in the bot's local
// timezone, so the quota resets implicitly at local midnight.
type QuotaService interface {
	// TryConsume reports whether the user may receive one more AI answer
	// today, incrementing the counter when allowed. At the limit it returns
	// false without mutating state.
	TryConsume(userID string) (bool, error)
	// Limit returns the configured daily limit, for user-facing notices.
	Limit() int
}

type quotaService struct {
	repo  repository.QuotaRepository
	limit int
	now   func() time.Time

	// Guards the read-check-increment sequence; updates for different users
	// are handled on concurrent goroutines.
	mu sync.Mutex
}

// NewQuotaService creates a quota service with the given daily limit.
func NewQuotaService(repo repository.QuotaRepository, limit int) QuotaService {
	if limit <= 0 {
		log.Printf("WARN: [QuotaService] Non-positive daily limit %d, falling back to 10.", limit)
		limit = 10
	}
	return &quotaService{repo: repo, limit: limit, now: time.Now}
}

func (s *quotaService) Limit() int {
	return s.limit
}

func (s *quotaService) TryConsume(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format("2006-01-02")

	quota, err := s.repo.GetQuota(userID)
	if err != nil {
		return false, err
	}

	// Day rollover: yesterday's count is discarded, the record is overwritten.
	if quota.Day != today {
		quota.Day = today
		quota.Count = 0
	}

	if quota.Count >= s.limit {
		log.Printf("INFO: [QuotaService] User %s reached the daily limit of %d messages.", userID, s.limit)
		return false, nil
	}

	quota.Count++
	if err := s.repo.SaveQuota(quota); err != nil {
		return false, err
	}
	return true, nil
}
