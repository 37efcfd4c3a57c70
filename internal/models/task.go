package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID   uint  `gorm:"not null;index"`
	MilestoneID *uint `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:todo"`   // "todo", "in_progress", "review", "completed"
	Priority    string `gorm:"not null;default:medium"` // "low", "medium", "high", "urgent"
	AssigneeID  *uint  `gorm:"index"`
	DueDate     *time.Time

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
