package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Alert struct {
	ID                   string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uint              `gorm:"not null;index" json:"user_id"`
	AlertName            string            `gorm:"not null" json:"alert_name"`
	Description          string            `json:"description,omitempty"`
	Severity             string            `gorm:"not null" json:"severity"`              // "low", "medium", "high", "critical"
	Status               string            `gorm:"not null;default:active" json:"status"` // "active", "resolved", "suppressed"
	Condition            datatypes.JSONMap `gorm:"type:jsonb" json:"condition"`
	ThresholdValue       float64           `json:"threshold_value"`
	CurrentValue         float64           `json:"current_value"`
	TriggeredAt          time.Time         `gorm:"not null;index" json:"triggered_at"`
	ResolvedAt           *time.Time        `json:"resolved_at"`
	NotificationChannels pq.StringArray    `gorm:"type:text[]" json:"notification_channels"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (Alert) TableName() string {
	return "monitoring_alerts"
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if a.Status == "" {
		a.Status = "active"
	}

	if a.TriggeredAt.IsZero() {
		a.TriggeredAt = time.Now().UTC()
	}

	return nil
}
