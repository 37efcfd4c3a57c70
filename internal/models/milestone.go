package models

import (
	"time"

	"gorm.io/gorm"
)

type Milestone struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:pending"` // "pending", "in_progress", "completed"
	DueDate     *time.Time
	Budget      float64

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Tasks   []Task  `gorm:"foreignKey:MilestoneID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
