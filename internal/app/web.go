package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsHub fans received telemetry out to connected browsers.
type wsHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func (h *wsHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *wsHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.Close()
}

func (h *wsHub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			delete(h.conns, c)
			c.Close()
		}
	}
}

// RunWeb serves a live view of the telemetry stream: it listens on the UDP
// port the streamer targets, keeps the latest reading for a JSON API, and
// pushes every datagram to browsers over websocket.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu         sync.RWMutex
		lastValues map[string]float64
		lastTime   float64
		haveData   bool
	)

	hub := &wsHub{conns: make(map[*websocket.Conn]bool)}

	// 1) Receive telemetry over UDP
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: cfg.UDPListenPort})
	if err != nil {
		return fmt.Errorf("web: UDP listen on :%d: %w", cfg.UDPListenPort, err)
	}
	defer conn.Close()
	log.Printf("web: receiving telemetry on :%d", cfg.UDPListenPort)

	go func() {
		buf := make([]byte, 65536)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}

			r, err := telemetry.Decode(buf[:n])
			if err != nil {
				log.Printf("web: %v", err)
				continue
			}

			mu.Lock()
			lastValues = r.Values
			lastTime = r.Timestamp
			haveData = true
			mu.Unlock()

			// Relay the original datagram; it is already the wire format
			// browsers expect.
			hub.broadcast(append([]byte(nil), buf[:n]...))
		}
	}()

	// 2) JSON API endpoint: latest reading
	http.HandleFunc("/api/telemetry", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveData {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		resp := struct {
			Timestamp float64            `json:"timestamp"`
			Channels  map[string]float64 `json:"channels"`
		}{Timestamp: lastTime, Channels: lastValues}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 3) Websocket stream
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(c)
		log.Printf("web: websocket client connected from %s", c.RemoteAddr())

		// Reads only to detect close.
		go func() {
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					hub.remove(c)
					return
				}
			}
		}()
	})

	// 4) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
