package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Probe is an operator-registered health probe. The scheduler runs it on its
// interval and writes the result into monitoring_health_checks and
// monitoring_metrics.
type Probe struct {
	gorm.Model

	UserID      uint           `gorm:"not null;index"`
	ServiceName string         `gorm:"not null"`
	Type        string         `gorm:"not null"` // "http", "dns", "database"
	Status      string         `gorm:"not null;default:active"`
	Interval    int            `gorm:"not null"` // Interval in seconds between runs
	Config      datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
