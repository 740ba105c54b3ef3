package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

type Order struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string      `gorm:"type:uuid;index;index:idx_orders_rest_status,priority:1;not null" json:"restaurantId"`
	TableNumber  *int        `gorm:"index:idx_orders_rest_table" json:"tableNumber"` // null = paket servis
	CustomerName string      `gorm:"size:255" json:"customerName"`
	Status       OrderStatus `gorm:"size:20;default:pending;index:idx_orders_rest_status,priority:2" json:"status"`
	// Kasiyer onayı: true olmadan mutfak/garson panelleri siparişi görmez
	Approved       bool      `gorm:"default:false" json:"approved"`
	TotalAmount    float64   `gorm:"not null" json:"totalAmount"`
	PaidAmount     float64   `gorm:"default:0" json:"paidAmount"`
	DiscountAmount float64   `gorm:"default:0" json:"discountAmount"`
	DiscountReason string    `gorm:"size:255" json:"discountReason,omitempty"`
	OrderType      OrderType `gorm:"size:20;default:dine_in" json:"orderType"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CashierNote    string    `gorm:"type:text" json:"cashierNote,omitempty"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID string `gorm:"type:uuid;index;not null" json:"orderId"`
	// Zayıf referans: menü kalemi silinmiş/eşleşmemiş olabilir
	MenuItemID *string   `gorm:"type:uuid" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem,omitempty"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  float64   `gorm:"not null;default:0" json:"unitPrice"`
	TotalPrice float64   `gorm:"not null;default:0" json:"totalPrice"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	Variations datatypes.JSONSlice[string] `json:"variations,omitempty"` // seçilen varyasyonlar, sıralı
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
