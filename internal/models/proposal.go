package models

import (
	"time"

	"gorm.io/gorm"
)

type Proposal struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Content     string
	Status      string `gorm:"not null;default:draft"` // "draft", "sent", "viewed", "accepted", "rejected"
	Version     int    `gorm:"not null;default:1"`
	TotalAmount float64
	Currency    string `gorm:"not null;default:USD"`
	ValidUntil  *time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
