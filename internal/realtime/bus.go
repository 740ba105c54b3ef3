package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Bus - panellere (mutfak/garson/kasa) anlık bildirim dağıtır.
// Teslimat en-fazla-bir-kez ve sıralamasızdır: kuyruk, tekrar ve
// kalıcılık yoktur. Yayın anında kayıtlı olmayan bir abone o olayı
// hiç görmez; paneller zaten polling ile telafi eder.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]chan []byte
}

// Abone kanalı dolarsa o abone için kare düşürülür; yavaş bir SSE
// istemcisi diğerlerini bloklamamalı.
const subscriberBuffer = 32

func NewBus() *Bus {
	return &Bus{subs: make(map[string]chan []byte)}
}

// Subscribe - yeni bir istemci bağlantısı kaydeder ve olay kanalını döner.
// Aynı clientId ile ikinci çağrı eski kanalı kapatıp yenisini açar.
func (b *Bus) Subscribe(clientID string) <-chan []byte {
	ch := make(chan []byte, subscriberBuffer)

	b.mu.Lock()
	if old, ok := b.subs[clientID]; ok {
		close(old)
	}
	b.subs[clientID] = ch
	b.mu.Unlock()

	return ch
}

func (b *Bus) Unsubscribe(clientID string) {
	b.mu.Lock()
	if ch, ok := b.subs[clientID]; ok {
		close(ch)
		delete(b.subs, clientID)
	}
	b.mu.Unlock()
}

// Publish - zarfı {type, ...payload, timestamp} olarak serileştirir ve
// o anda kayıtlı tüm abonelere yazar.
func (b *Bus) Publish(eventType string, payload map[string]any) {
	envelope := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		envelope[k] = v
	}
	envelope["type"] = eventType
	envelope["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("[realtime] %s olayı serileştirilemedi: %v", eventType, err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for clientID, ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Abone tamponu dolu; bu kare bu abone için kayıp
			log.Printf("[realtime] abone %s yavaş, %s olayı düşürüldü", clientID, eventType)
		}
	}
}

// SubscriberCount - aktif abone sayısı (sağlık/izleme uçları için)
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
