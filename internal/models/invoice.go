package models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model

	ProjectID     uint   `gorm:"not null;index"`
	InvoiceNumber string `gorm:"uniqueIndex;not null"`
	Status        string `gorm:"not null;default:draft"` // "draft", "sent", "paid", "overdue", "cancelled"
	Amount        float64
	Currency      string `gorm:"not null;default:USD"`
	DueDate       *time.Time
	PaidAt        *time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
