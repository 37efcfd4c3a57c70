package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Metric struct {
	ID          string                              `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint                                `gorm:"not null;index" json:"user_id"`
	MetricName  string                              `gorm:"not null;index" json:"metric_name"`
	MetricValue float64                             `gorm:"not null" json:"metric_value"`
	MetricType  string                              `gorm:"not null;default:gauge" json:"metric_type"` // "counter", "gauge", "histogram", "summary"
	Labels      datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"labels"`
	Timestamp   time.Time                           `gorm:"not null;index" json:"timestamp"`
	CreatedAt   time.Time                           `json:"created_at"`
}

func (Metric) TableName() string {
	return "monitoring_metrics"
}

func (m *Metric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	return nil
}
