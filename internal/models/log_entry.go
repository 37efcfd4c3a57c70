package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LogEntry struct {
	ID        string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	Level     string             `gorm:"not null;index" json:"level"` // "debug", "info", "warn", "error", "fatal"
	Message   string             `gorm:"not null" json:"message"`
	Service   string             `gorm:"not null;index" json:"service"`
	Context   datatypes.JSONMap  `gorm:"type:jsonb" json:"context"`
	TraceID   string             `json:"trace_id,omitempty"`
	SpanID    string             `json:"span_id,omitempty"`
	Timestamp time.Time          `gorm:"not null;index" json:"timestamp"`
	CreatedAt time.Time          `json:"created_at"`
}

func (LogEntry) TableName() string {
	return "monitoring_logs"
}

func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}

	if l.Context == nil {
		l.Context = datatypes.JSONMap{}
	}

	return nil
}
