package qr

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"

	"masapp-backend/internal/models"
)

// Masa token'ları fiilen süresiz; rotasyon masa kapandığında yapılır
const tokenLifetime = 10 * 365 * 24 * time.Hour

// Service - masa QR token yönetimi. Her masanın aynı anda tek aktif
// token'ı vardır; sipariş tamamlanınca token döndürülür ki masadan
// kalkan müşteri eski QR ile sipariş veremesin.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token üretilemedi: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RotateTableToken - masanın aktif token'larını pasifleştirip yenisini
// üretir. Restoran ayarlarında qrTokensPermanent açıksa çağıran taraf
// bu metodu hiç çağırmaz.
func (s *Service) RotateTableToken(restaurantID string, tableNumber int, createdBy string) (*models.QRToken, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	record := &models.QRToken{
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		Token:        token,
		ExpiresAt:    time.Now().Add(tokenLifetime),
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QRToken{}).
			Where("restaurant_id = ? AND table_number = ? AND is_active = ?", restaurantID, tableNumber, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("token döndürülemedi: %w", err)
	}
	return record, nil
}

// ActiveToken - masanın aktif token'ını döner; yoksa oluşturur
func (s *Service) ActiveToken(restaurantID string, tableNumber int) (*models.QRToken, error) {
	var token models.QRToken
	err := s.db.
		Where("restaurant_id = ? AND table_number = ? AND is_active = ?", restaurantID, tableNumber, true).
		Order("created_at DESC").
		First(&token).Error
	if err == nil {
		return &token, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return s.RotateTableToken(restaurantID, tableNumber, "system")
}

// Validate - token geçerli mi? Aktif ve süresi dolmamış olmalı
func (s *Service) Validate(tokenValue string) (*models.QRToken, error) {
	var token models.QRToken
	err := s.db.Where("token = ? AND is_active = ?", tokenValue, true).First(&token).Error
	if err != nil {
		return nil, err
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	return &token, nil
}

// DeactivateExpired - süresi geçmiş token'ları pasifleştirir; cron
// tarafından günlük çağrılır
func (s *Service) DeactivateExpired() (int64, error) {
	result := s.db.Model(&models.QRToken{}).
		Where("is_active = ? AND expires_at < ?", true, time.Now()).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
