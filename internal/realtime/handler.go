package realtime

import (
	"bufio"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EventsHandler - GET /api/events
// Uzun ömürlü SSE akışı: önce {type:"connected", clientId} karesi, sonra
// yayınlanan zarflar. Bağlantı koptuğunda abonelik silinir.
func EventsHandler(bus *Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx tamponlamasını kapat

		clientID := fmt.Sprintf("client_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		events := bus.Subscribe(clientID)

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer bus.Unsubscribe(clientID)

			fmt.Fprintf(w, "data: {\"type\":\"connected\",\"clientId\":%q,\"timestamp\":%q}\n\n",
				clientID, time.Now().UTC().Format(time.RFC3339))
			if err := w.Flush(); err != nil {
				return
			}

			keepalive := time.NewTicker(25 * time.Second)
			defer keepalive.Stop()

			for {
				select {
				case msg, ok := <-events:
					if !ok {
						return
					}
					fmt.Fprintf(w, "data: %s\n\n", msg)
					if err := w.Flush(); err != nil {
						// İstemci bağlantıyı kapattı
						log.Printf("[realtime] abone %s bağlantısı koptu", clientID)
						return
					}
				case <-keepalive.C:
					// Ara sunucuların bağlantıyı düşürmemesi için yorum karesi
					fmt.Fprint(w, ": ping\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		})

		return nil
	}
}
