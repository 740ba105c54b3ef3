package printing

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masapp-backend/internal/models"
)

// fakePrinter - gelen baytları toplayan TCP dinleyici
func fakePrinter(t *testing.T) (string, int, <-chan []byte) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	received := make(chan []byte, 4)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				data, _ := io.ReadAll(conn)
				received <- data
			}(conn)
		}
	}()

	addr := listener.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, received
}

func TestDispatchSuccess(t *testing.T) {
	ip, port, received := fakePrinter(t)
	d := NewDispatcher(false, 2*time.Second)

	payload := []byte{0x1B, 0x40, 'T', 'E', 'S', 'T'}
	results := d.Dispatch([]Job{{
		StationID: "mutfak",
		Config:    models.StationConfig{Name: "Mutfak", IP: ip, Port: port, Enabled: true},
		Payload:   payload,
	}})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].ErrorKind)

	select {
	case data := <-received:
		assert.Equal(t, payload, data)
	case <-time.After(2 * time.Second):
		t.Fatal("yazıcı veriyi almadı")
	}
}

func TestDispatchNotConfigured(t *testing.T) {
	d := NewDispatcher(false, time.Second)

	results := d.Dispatch([]Job{
		{StationID: "kapali", Config: models.StationConfig{Name: "Kapalı", IP: "127.0.0.1", Port: 9100, Enabled: false}},
		{StationID: "ipsiz", Config: models.StationConfig{Name: "IP'siz", Enabled: true}},
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, ErrKindNotConfigured, r.ErrorKind)
		assert.False(t, r.IsLocalBridgeRequired)
	}
}

func TestDispatchConnectionFailed(t *testing.T) {
	// TEST-NET-3 adresi: bağlantı kurulamaz, timeout kısa tutulur
	d := NewDispatcher(false, 200*time.Millisecond)

	start := time.Now()
	results := d.Dispatch([]Job{{
		StationID: "ulasilmaz",
		Config:    models.StationConfig{Name: "Ulaşılmaz", IP: "203.0.113.1", Port: 9100, Enabled: true},
	}})
	elapsed := time.Since(start)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, ErrKindConnectionFailed, results[0].ErrorKind)
	assert.NotEmpty(t, results[0].Error)
	assert.Less(t, elapsed, 2*time.Second, "timeout sınırı aşıldı")
}

func TestDispatchCloudModeRequiresBridge(t *testing.T) {
	d := NewDispatcher(true, time.Second)

	results := d.Dispatch([]Job{
		{StationID: "ozel-ag", Config: models.StationConfig{Name: "Mutfak", IP: "192.168.1.50", Port: 9100, Enabled: true}},
		{StationID: "loopback", Config: models.StationConfig{Name: "Yerel", IP: "127.0.0.1", Port: 9100, Enabled: true}},
		{StationID: "host", Config: models.StationConfig{Name: "Host", IP: "localhost", Port: 9100, Enabled: true}},
	})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, ErrKindLocalBridge, r.ErrorKind)
		assert.True(t, r.IsLocalBridgeRequired)
	}
}

func TestDispatchCloudModePublicAddrStillTried(t *testing.T) {
	// Bulut modunda genel adres köprüye yönlendirilmez, bağlantı denenir
	d := NewDispatcher(true, 200*time.Millisecond)

	results := d.Dispatch([]Job{{
		StationID: "genel",
		Config:    models.StationConfig{Name: "Genel", IP: "203.0.113.1", Port: 9100, Enabled: true},
	}})

	require.Len(t, results, 1)
	assert.Equal(t, ErrKindConnectionFailed, results[0].ErrorKind)
	assert.False(t, results[0].IsLocalBridgeRequired)
}

func TestDispatchParallelIsolation(t *testing.T) {
	// Ulaşılamayan istasyon, çalışan istasyonun basımını engellemez
	ip, port, received := fakePrinter(t)
	d := NewDispatcher(false, 300*time.Millisecond)

	results := d.Dispatch([]Job{
		{StationID: "olu", Config: models.StationConfig{Name: "Ölü", IP: "203.0.113.1", Port: 9100, Enabled: true}},
		{StationID: "canli", Config: models.StationConfig{Name: "Canlı", IP: ip, Port: port, Enabled: true}, Payload: []byte("ok")},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "olu", results[0].StationID)
	assert.False(t, results[0].Success)
	assert.Equal(t, "canli", results[1].StationID)
	assert.True(t, results[1].Success)

	select {
	case data := <-received:
		assert.Equal(t, []byte("ok"), data)
	case <-time.After(2 * time.Second):
		t.Fatal("canlı yazıcı veriyi almadı")
	}
}

func TestIsPrivateAddr(t *testing.T) {
	assert.True(t, isPrivateAddr("192.168.0.10"))
	assert.True(t, isPrivateAddr("10.0.5.1"))
	assert.True(t, isPrivateAddr("172.16.3.4"))
	assert.True(t, isPrivateAddr("127.0.0.1"))
	assert.True(t, isPrivateAddr("localhost"))
	assert.False(t, isPrivateAddr("203.0.113.1"))
	assert.False(t, isPrivateAddr("8.8.8.8"))
	assert.False(t, isPrivateAddr("yazici.example.com"))
}
