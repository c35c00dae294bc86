package models

import "time"

const UsageTypeRepurpose = "repurpose"

// UsageLog is one billable action. Rows are append-only; quota evaluation
// depends only on insert order, never on updates.
type UsageLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_usage_logs_user_type,priority:1" json:"user_id"`
	Type      string    `gorm:"type:varchar(50);not null;index:idx_usage_logs_user_type,priority:2" json:"type"`
	Count     int       `gorm:"not null;default:1" json:"count"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
