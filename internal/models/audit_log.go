package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog - sipariş ve istasyon yapılandırması üzerindeki değişikliklerin izi
type AuditLog struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	RestaurantID *string `gorm:"type:uuid;index"`
	UserID       string  `gorm:"size:64"` // personel id'si veya "system"/"customer"
	UserName     string  `gorm:"size:100"`
	EntityType   string  `gorm:"size:50;index;not null"` // order, station, waiter_call
	EntityID     string  `gorm:"size:64;index"`
	Action       AuditAction `gorm:"size:20;not null"`
	Description  string      `gorm:"size:255"`
	BeforeData   string      `gorm:"type:jsonb;default:null"`
	AfterData    string      `gorm:"type:jsonb;default:null"`
	CreatedAt    time.Time
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
