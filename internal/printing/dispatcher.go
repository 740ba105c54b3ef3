package printing

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"masapp-backend/internal/models"
)

// Hata sınıfları; istemci tarafı requires_local_bridge görünce yazdırma
// işini yerel köprü uygulamasına devreder.
const (
	ErrKindNotConfigured    = "not_configured"
	ErrKindConnectionFailed = "connection_failed"
	ErrKindLocalBridge      = "requires_local_bridge"
)

// Result - tek istasyona yapılan basım denemesinin sonucu. Sipariş
// yanıtına printResults olarak eklenir; basım hatası siparişi asla
// geri almaz.
type Result struct {
	StationID             string `json:"stationId"`
	StationName           string `json:"stationName,omitempty"`
	Success               bool   `json:"success"`
	Error                 string `json:"error,omitempty"`
	ErrorKind             string `json:"errorKind,omitempty"`
	IsLocalBridgeRequired bool   `json:"isLocalBridgeRequired,omitempty"`
}

// Job - bir istasyona gönderilecek hazır bayt dizisi
type Job struct {
	StationID string
	Config    models.StationConfig
	Payload   []byte
}

// Dispatcher - ESC/POS baytlarını istasyon yazıcılarına ham TCP ile
// gönderir. Bulut dağıtımında özel ağ adresine erişim olmadığından
// bağlantı hiç denenmeden requires_local_bridge döner.
type Dispatcher struct {
	CloudMode bool
	Timeout   time.Duration
}

func NewDispatcher(cloudMode bool, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{CloudMode: cloudMode, Timeout: timeout}
}

// Dispatch - işleri istasyon başına paralel gönderir ve tüm sonuçları
// iş sırasıyla döndürür. Bir istasyonun yavaşlığı diğerlerini bekletmez.
func (d *Dispatcher) Dispatch(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			results[i] = d.send(job)
		}(i, job)
	}

	wg.Wait()
	return results
}

func (d *Dispatcher) send(job Job) Result {
	res := Result{StationID: job.StationID, StationName: job.Config.Name}

	if !job.Config.Enabled || job.Config.IP == "" {
		res.Error = "istasyon için yazıcı yapılandırılmamış"
		res.ErrorKind = ErrKindNotConfigured
		return res
	}

	port := job.Config.Port
	if port == 0 {
		port = 9100
	}
	addr := fmt.Sprintf("%s:%d", job.Config.IP, port)

	if d.CloudMode && isPrivateAddr(job.Config.IP) {
		res.Error = "yazıcı özel ağda, yerel köprü gerekli"
		res.ErrorKind = ErrKindLocalBridge
		res.IsLocalBridgeRequired = true
		return res
	}

	conn, err := net.DialTimeout("tcp", addr, d.Timeout)
	if err != nil {
		log.Printf("Yazıcı bağlantı hatası (%s): %v", addr, err)
		res.Error = err.Error()
		res.ErrorKind = ErrKindConnectionFailed
		return res
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(d.Timeout))
	if _, err := conn.Write(job.Payload); err != nil {
		log.Printf("Yazıcı yazma hatası (%s): %v", addr, err)
		res.Error = err.Error()
		res.ErrorKind = ErrKindConnectionFailed
		return res
	}

	res.Success = true
	return res
}

// isPrivateAddr - adres özel ağda mı? Bulut sunucusu RFC1918 ve
// loopback adreslere ulaşamaz.
func isPrivateAddr(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback()
}
