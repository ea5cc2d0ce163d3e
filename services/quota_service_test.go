package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/models"

	"github.com/stretchr/testify/assert"
)

// fakeQuotaRepository is an in-memory stand-in for the GORM repository. The
// quota tests need state evolving across calls, which a map models directly.
type fakeQuotaRepository struct {
	records map[string]models.DailyQuota
	getErr  error
}

func newFakeQuotaRepository() *fakeQuotaRepository {
	return &fakeQuotaRepository{records: make(map[string]models.DailyQuota)}
}

func (f *fakeQuotaRepository) GetQuota(userID string) (*models.DailyQuota, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if record, ok := f.records[userID]; ok {
		copied := record
		return &copied, nil
	}
	return &models.DailyQuota{UserID: userID}, nil
}

func (f *fakeQuotaRepository) SaveQuota(quota *models.DailyQuota) error {
	f.records[quota.UserID] = *quota
	return nil
}

func TestTryConsume_ExhaustsDailyLimit(t *testing.T) {
	repo := newFakeQuotaRepository()
	svc := &quotaService{repo: repo, limit: 3, now: func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	}}

	for i := 0; i < 3; i++ {
		allowed, err := svc.TryConsume("user-1")
		assert.NoError(t, err)
		assert.True(t, allowed, "call %d should be within the limit", i+1)
	}

	allowed, err := svc.TryConsume("user-1")
	assert.NoError(t, err)
	assert.False(t, allowed, "call beyond the limit must be rejected")

	// The counter never exceeds the limit.
	assert.Equal(t, 3, repo.records["user-1"].Count)
}

func TestTryConsume_ResetsAcrossDayBoundary(t *testing.T) {
	repo := newFakeQuotaRepository()
	current := time.Date(2025, 6, 10, 23, 50, 0, 0, time.Local)
	svc := &quotaService{repo: repo, limit: 1, now: func() time.Time { return current }}

	allowed, err := svc.TryConsume("user-1")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.TryConsume("user-1")
	assert.NoError(t, err)
	assert.False(t, allowed, "limit reached for the day")

	// Local midnight passes; the same user is allowed again and the old
	// record is overwritten, not appended.
	current = time.Date(2025, 6, 11, 0, 5, 0, 0, time.Local)
	allowed, err = svc.TryConsume("user-1")
	assert.NoError(t, err)
	assert.True(t, allowed)

	record := repo.records["user-1"]
	assert.Equal(t, "2025-06-11", record.Day)
	assert.Equal(t, 1, record.Count)
	assert.Len(t, repo.records, 1)
}

func TestTryConsume_IndependentUsers(t *testing.T) {
	repo := newFakeQuotaRepository()
	svc := &quotaService{repo: repo, limit: 1, now: time.Now}

	allowed, _ := svc.TryConsume("user-1")
	assert.True(t, allowed)
	allowed, _ = svc.TryConsume("user-1")
	assert.False(t, allowed)

	allowed, _ = svc.TryConsume("user-2")
	assert.True(t, allowed, "another user's quota is untouched")
}

func TestTryConsume_RepositoryError(t *testing.T) {
	repo := newFakeQuotaRepository()
	repo.getErr = errors.New("database unavailable")
	svc := &quotaService{repo: repo, limit: 3, now: time.Now}

	allowed, err := svc.TryConsume("user-1")
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestNewQuotaService_DefaultsInvalidLimit(t *testing.T) {
	svc := NewQuotaService(newFakeQuotaRepository(), 0)
	assert.Equal(t, 10, svc.Limit())
}
