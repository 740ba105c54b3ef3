package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StationConfig - restaurant.printer_config içindeki tek bir yazıcı istasyonu.
// Kayıt anahtarı istasyon id'sidir (örn: "mutfak", "icecek", "kasa").
type StationConfig struct {
	Name     string `json:"name"`
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Enabled  bool   `json:"enabled"`
	Type     string `json:"type"`     // yazıcı tipi, varsayılan "epson"
	Language string `json:"language"` // fiş dili: "tr" veya "zh"
}

// KitchenStation - panellerde gösterilen istasyon listesi elemanı
type KitchenStation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// TableRangeRule - içecek yönlendirmesinde bir masa aralığı (kat)
type TableRangeRule struct {
	Name       string `json:"name"`
	StartTable int    `json:"startTable"`
	EndTable   int    `json:"endTable"`
	StationID  string `json:"stationId"`
}

// DrinkRoutingConfig - içecek siparişlerinin masa aralığına göre
// hangi istasyona gideceğini belirler. Aralıklar çakışmamalı;
// çakışırsa sıradaki ilk eşleşme kazanır.
type DrinkRoutingConfig struct {
	DrinkCategoryID string           `json:"drinkCategoryId"`
	Floors          []TableRangeRule `json:"floors"`
}

type RestaurantSettings struct {
	DrinkRouting      *DrinkRoutingConfig `json:"drinkStationRouting,omitempty"`
	QRTokensPermanent bool                `json:"qrTokensPermanent"`
}

type Restaurant struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Name            string `gorm:"size:255;not null"`
	Username        string `gorm:"size:100;uniqueIndex;not null"` // subdomain olarak kullanılır
	IsActive        bool   `gorm:"default:true"`
	PrinterConfig   datatypes.JSONType[map[string]StationConfig] `gorm:"column:printer_config"`
	KitchenStations datatypes.JSONType[[]KitchenStation]         `gorm:"column:kitchen_stations"`
	Settings        datatypes.JSONType[RestaurantSettings]
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
