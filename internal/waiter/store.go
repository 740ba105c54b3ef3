package waiter

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Çağrı türleri; "ready" çağrıları sipariş hazır olduğunda sistemce açılır
const (
	CallTypeWaiter  = "waiter"
	CallTypeWater   = "water"
	CallTypeClean   = "clean"
	CallTypePayment = "payment"
	CallTypeCustom  = "custom"
	CallTypeReady   = "ready"
)

// Çağrı durumları
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// Call - garson çağrısı. Çağrılar kalıcı değildir; süreç yeniden
// başlayınca kaybolmaları kabul edilir, müşteri tekrar çağırır.
type Call struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurantId"`
	TableNumber  int        `json:"tableNumber"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	OrderID      string     `json:"orderId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// Store - bellek içi çağrı deposu
type Store struct {
	mu    sync.Mutex
	calls map[string]*Call
}

func NewStore() *Store {
	return &Store{calls: make(map[string]*Call)}
}

// Create - yeni çağrı açar ve kimliğini üretir
func (s *Store) Create(restaurantID string, tableNumber int, callType, message, orderID string) *Call {
	call := &Call{
		ID:           fmt.Sprintf("call_%d_%d", time.Now().UnixMilli(), rand.Intn(100000)),
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		Type:         callType,
		Status:       StatusActive,
		Message:      message,
		OrderID:      orderID,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.calls[call.ID] = call
	s.mu.Unlock()
	return call
}

// ListActive - restoranın çözülmemiş çağrılarını yeniden eskiye sıralı döner
func (s *Store) ListActive(restaurantID string) []*Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Call, 0)
	for _, call := range s.calls {
		if call.RestaurantID == restaurantID && call.ResolvedAt == nil {
			out = append(out, call)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Resolve - çağrıyı çözüldü olarak işaretler; ikinci çözme isteği
// çağrıyı değiştirmez ama yine çağrıyı döner (idempotent)
func (s *Store) Resolve(id string) (*Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call, ok := s.calls[id]
	if !ok {
		return nil, false
	}
	if call.ResolvedAt == nil {
		now := time.Now()
		call.ResolvedAt = &now
		call.Status = StatusResolved
	}
	return call, true
}

// Delete - çağrıyı siler
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.calls[id]; !ok {
		return false
	}
	delete(s.calls, id)
	return true
}

// PruneResolved - verilen süreden eski çözülmüş çağrıları temizler.
// Cron tarafından saat başı çağrılır; depo sınırsız büyümesin diye.
func (s *Store) PruneResolved(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, call := range s.calls {
		if call.ResolvedAt != nil && call.ResolvedAt.Before(cutoff) {
			delete(s.calls, id)
			removed++
		}
	}
	return removed
}
