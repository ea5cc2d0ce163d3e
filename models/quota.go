package models

import "time"

// DailyQuota tracks how many AI-answered messages a user has received today.
// The record is keyed by user only; Day is overwritten when the calendar day
// changes, so storage stays proportional to active users rather than
// users times days.
type DailyQuota struct {
	UserID    string    `gorm:"primaryKey"`
	Day       string    // local calendar date, "2006-01-02"
	Count     int       `gorm:"default:0"`
	UpdatedAt time.Time // automatically managed by GORM
}

// TableName specifies the table name for the DailyQuota model.
func (DailyQuota) TableName() string {
	return "daily_quotas"
}
