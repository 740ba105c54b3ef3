package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleKitchen UserRole = "kitchen"
	RoleWaiter  UserRole = "waiter"
	RoleCashier UserRole = "cashier"
	RoleAdmin   UserRole = "admin"
)

// User - restoran personeli. Mutfak/garson/kasiyer panellerine
// bu hesaplarla girilir.
type User struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	RestaurantID *string `gorm:"type:uuid;index"`
	Name         string  `gorm:"size:100;not null"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	IsActive     bool     `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
