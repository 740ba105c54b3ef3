package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QRToken struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string    `gorm:"type:uuid;index;index:idx_qr_rest_table,priority:1;not null" json:"restaurantId"`
	TableNumber  int       `gorm:"not null;index:idx_qr_rest_table,priority:2" json:"tableNumber"`
	Token        string    `gorm:"size:100;uniqueIndex;not null" json:"token"`
	ExpiresAt    time.Time `gorm:"not null" json:"expiresAt"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedBy    string    `gorm:"size:50;default:system" json:"createdBy"` // waiter, system, admin
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (q *QRToken) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
