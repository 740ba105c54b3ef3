package qr

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"masapp-backend/internal/database"
	"masapp-backend/internal/models"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func TestRotateTableToken(t *testing.T) {
	svc, db := newTestService(t)

	first, err := svc.RotateTableToken("rest-1", 5, "system")
	require.NoError(t, err)
	assert.Len(t, first.Token, 64)
	assert.True(t, first.IsActive)

	second, err := svc.RotateTableToken("rest-1", 5, "waiter")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Önceki token pasifleşti
	var old models.QRToken
	require.NoError(t, db.First(&old, "id = ?", first.ID).Error)
	assert.False(t, old.IsActive)

	// Başka masanın token'ı etkilenmez
	other, err := svc.RotateTableToken("rest-1", 6, "system")
	require.NoError(t, err)
	svc.RotateTableToken("rest-1", 5, "system")
	var otherFresh models.QRToken
	require.NoError(t, db.First(&otherFresh, "id = ?", other.ID).Error)
	assert.True(t, otherFresh.IsActive)
}

func TestActiveTokenCreatesWhenMissing(t *testing.T) {
	svc, _ := newTestService(t)

	token, err := svc.ActiveToken("rest-1", 3)
	require.NoError(t, err)
	assert.True(t, token.IsActive)

	again, err := svc.ActiveToken("rest-1", 3)
	require.NoError(t, err)
	assert.Equal(t, token.ID, again.ID, "aktif token varken yenisi üretilmez")
}

func TestValidate(t *testing.T) {
	svc, db := newTestService(t)

	token, err := svc.RotateTableToken("rest-1", 2, "system")
	require.NoError(t, err)

	got, err := svc.Validate(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "rest-1", got.RestaurantID)
	assert.Equal(t, 2, got.TableNumber)

	_, err = svc.Validate("yok-boyle-token")
	assert.Error(t, err)

	// Süresi dolmuş token geçersiz
	require.NoError(t, db.Model(token).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	_, err = svc.Validate(token.Token)
	assert.Error(t, err)
}

func TestDeactivateExpired(t *testing.T) {
	svc, db := newTestService(t)

	expired, err := svc.RotateTableToken("rest-1", 1, "system")
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	fresh, err := svc.RotateTableToken("rest-1", 2, "system")
	require.NoError(t, err)

	n, err := svc.DeactivateExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var check models.QRToken
	require.NoError(t, db.First(&check, "id = ?", fresh.ID).Error)
	assert.True(t, check.IsActive)
}
