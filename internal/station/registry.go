package station

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"masapp-backend/internal/models"
)

// Registry - restoran başına yazıcı istasyonu kayıtları. Kaynak doğruluk
// restaurants.printer_config sütunudur; sık okunan yol (sipariş onayı)
// için bellekte restoran bazlı önbellek tutulur.
type Registry struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]map[string]models.StationConfig
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:    db,
		cache: make(map[string]map[string]models.StationConfig),
	}
}

// Station - API yanıtlarında kullanılan, kimliği gömülü istasyon görünümü
type Station struct {
	ID string `json:"id"`
	models.StationConfig
}

func (r *Registry) load(restaurantID string) (map[string]models.StationConfig, error) {
	r.mu.RLock()
	cached, ok := r.cache[restaurantID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		return nil, err
	}

	stations := restaurant.PrinterConfig.Data()
	if stations == nil {
		stations = make(map[string]models.StationConfig)
	}

	r.mu.Lock()
	r.cache[restaurantID] = stations
	r.mu.Unlock()
	return stations, nil
}

func (r *Registry) persist(restaurantID string, stations map[string]models.StationConfig) error {
	err := r.db.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("printer_config", datatypes.NewJSONType(stations)).Error
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache[restaurantID] = stations
	r.mu.Unlock()
	return nil
}

// List - restoranın istasyonlarını anahtara göre sıralı döndürür
func (r *Registry) List(restaurantID string) ([]Station, error) {
	stations, err := r.load(restaurantID)
	if err != nil {
		return nil, err
	}

	out := make([]Station, 0, len(stations))
	for id, cfg := range stations {
		out = append(out, Station{ID: id, StationConfig: cfg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get - tek istasyon yapılandırması; yoksa ok=false
func (r *Registry) Get(restaurantID, stationID string) (models.StationConfig, bool, error) {
	stations, err := r.load(restaurantID)
	if err != nil {
		return models.StationConfig{}, false, err
	}
	cfg, ok := stations[stationID]
	return cfg, ok, nil
}

// Put - istasyon ekler veya günceller ve kalıcılaştırır
func (r *Registry) Put(restaurantID, stationID string, cfg models.StationConfig) error {
	stations, err := r.load(restaurantID)
	if err != nil {
		return err
	}

	next := make(map[string]models.StationConfig, len(stations)+1)
	for k, v := range stations {
		next[k] = v
	}
	next[stationID] = cfg
	return r.persist(restaurantID, next)
}

// Delete - istasyonu kaldırır; istasyon yoksa hata döner
func (r *Registry) Delete(restaurantID, stationID string) error {
	stations, err := r.load(restaurantID)
	if err != nil {
		return err
	}
	if _, ok := stations[stationID]; !ok {
		return fmt.Errorf("istasyon bulunamadı: %s", stationID)
	}

	next := make(map[string]models.StationConfig, len(stations))
	for k, v := range stations {
		if k != stationID {
			next[k] = v
		}
	}
	return r.persist(restaurantID, next)
}

// Invalidate - dış güncellemelerden sonra önbelleği düşürür
func (r *Registry) Invalidate(restaurantID string) {
	r.mu.Lock()
	delete(r.cache, restaurantID)
	r.mu.Unlock()
}
