package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuCategory struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;index;not null" json:"restaurantId"`
	Name         string `gorm:"size:255;not null" json:"name"`
	// Kategori seviyesinde istasyon ataması; ürün kendi istasyonunu
	// belirtmişse ürününki geçerlidir
	KitchenStation string `gorm:"size:50" json:"kitchenStation,omitempty"`
	DisplayOrder   int    `gorm:"default:0" json:"displayOrder"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ItemTranslation - çok dilli ürün bilgisi (fiş baskısında kullanılır)
type ItemTranslation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type MenuItem struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID   string  `gorm:"type:uuid;index;not null" json:"restaurantId"`
	CategoryID     string  `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category       *MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name           string  `gorm:"size:255;not null;index:idx_menu_items_rest_name" json:"name"`
	Description    string  `gorm:"type:text" json:"description,omitempty"`
	Price          float64 `gorm:"not null;default:0" json:"price"`
	ImageURL       string  `gorm:"size:500" json:"imageUrl,omitempty"`
	KitchenStation string  `gorm:"size:50" json:"kitchenStation,omitempty"`
	Translations   datatypes.JSONType[map[string]ItemTranslation] `json:"translations,omitempty"`
	IsAvailable    bool      `gorm:"default:true" json:"isAvailable"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// EffectiveStation - ürünün istasyon etiketi; ürün boşsa kategorininki
func (m *MenuItem) EffectiveStation() string {
	if m.KitchenStation != "" {
		return m.KitchenStation
	}
	if m.Category != nil {
		return m.Category.KitchenStation
	}
	return ""
}
