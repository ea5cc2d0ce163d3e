package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotaRepository defines the interface for interacting with daily quota data.
type QuotaRepository interface {
	GetQuota(userID string) (*models.DailyQuota, error)
	SaveQuota(quota *models.DailyQuota) error
}

type quotaRepository struct {
	db *gorm.DB
}

// NewQuotaRepository creates a new instance of QuotaRepository.
func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

// GetQuota retrieves the current quota record for a user.
// If no record exists yet, it returns a fresh record with zero count and no
// error, so callers can treat first contact uniformly.
func (r *quotaRepository) GetQuota(userID string) (*models.DailyQuota, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var quota models.DailyQuota
	err := r.db.First(&quota, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyQuota{UserID: userID}, nil
		}
		log.Printf("ERROR: [QuotaRepository] Failed to fetch quota for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch quota for user %s: %w", userID, err)
	}
	return &quota, nil
}

// SaveQuota writes the quota record, overwriting any existing record for the
// same user (UPSERT on the primary key). A day rollover therefore replaces
// yesterday's row instead of accumulating one row per day.
func (r *quotaRepository) SaveQuota(quota *models.DailyQuota) error {
	if quota == nil || quota.UserID == "" {
		return errors.New("quota record must have a user ID")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"day", "count", "updated_at"}),
	}).Create(quota).Error
	if err != nil {
		log.Printf("ERROR: [QuotaRepository] Failed to save quota for user %s: %v", quota.UserID, err)
		return fmt.Errorf("failed to save quota for user %s: %w", quota.UserID, err)
	}
	return nil
}
