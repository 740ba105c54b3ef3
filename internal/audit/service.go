package audit

import (
	"encoding/json"
	"fmt"

	"masapp-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	RestaurantID *string
	UserID       string
	UserName     string
	EntityType   string // order, station, waiter_call
	EntityID     string
	Action       models.AuditAction
	Description  string
	Before       any
	After        any
}

// WriteLog - değişiklik izini kaydeder. PostgreSQL jsonb kolonları boş
// string kabul etmediği için nil değerler "null" JSON olarak yazılır.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		RestaurantID: opts.RestaurantID,
		UserID:       opts.UserID,
		UserName:     opts.UserName,
		EntityType:   opts.EntityType,
		EntityID:     opts.EntityID,
		Action:       opts.Action,
		Description:  opts.Description,
		BeforeData:   beforeStr,
		AfterData:    afterStr,
	}

	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}
