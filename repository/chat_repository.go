package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for persisting chat audit records.
type ChatRepository interface {
	SaveLog(entry *models.ChatLog) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new instance of ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// SaveLog persists one answered exchange.
func (r *chatRepository) SaveLog(entry *models.ChatLog) error {
	if entry == nil || entry.UserID == "" {
		return errors.New("chat log entry must have a user ID")
	}
	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("ERROR: [ChatRepository] Failed to save chat log for user %s: %v", entry.UserID, err)
		return fmt.Errorf("failed to save chat log for user %s: %w", entry.UserID, err)
	}
	return nil
}
