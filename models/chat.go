package models

import "time"

// ChatLog is the audit record of one AI-answered exchange. It is never fed
// back into prompts; the bot keeps no conversation memory.
type ChatLog struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         string `gorm:"index"`
	UserName       string
	Question       string
	Answer         string
	Provider       string // label of the provider that produced the answer
	Classification string // "simple", "complex" or "default"
	CreatedAt      time.Time
}

// TableName specifies the table name for the ChatLog model.
func (ChatLog) TableName() string {
	return "chat_logs"
}
