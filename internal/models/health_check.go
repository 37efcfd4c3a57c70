package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthCheck holds the current state of one monitored service. There is one
// row per (service_name, user_id); writes go through the store's upsert.
type HealthCheck struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;uniqueIndex:idx_service_user" json:"user_id"`
	ServiceName  string            `gorm:"not null;uniqueIndex:idx_service_user" json:"service_name"`
	Endpoint     string            `gorm:"not null" json:"endpoint"`
	Status       string            `gorm:"not null;default:healthy" json:"status"` // "healthy", "degraded", "unhealthy"
	ResponseTime int               `json:"response_time"`                          // Milliseconds
	LastCheck    time.Time         `gorm:"not null;index" json:"last_check"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (HealthCheck) TableName() string {
	return "monitoring_health_checks"
}

func (h *HealthCheck) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	if h.LastCheck.IsZero() {
		h.LastCheck = time.Now().UTC()
	}

	return nil
}
