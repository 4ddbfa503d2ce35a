package app

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// RunConsole binds the configured UDP listen port and prints every
// telemetry message it receives, one aligned line per datagram. It doubles
// as a stand-in for the visualization consumer when debugging the stream.
func RunConsole() error {
	cfg := config.Get()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: cfg.UDPListenPort})
	if err != nil {
		return fmt.Errorf("console: UDP listen on :%d: %w", cfg.UDPListenPort, err)
	}
	log.Printf("console: listening for telemetry on :%d", cfg.UDPListenPort)

	go func() {
		buf := make([]byte, 65536)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				// Closed on shutdown.
				return
			}

			r, err := telemetry.Decode(buf[:n])
			if err != nil {
				log.Printf("console: %v", err)
				continue
			}

			names := make([]string, 0, len(r.Values))
			for name := range r.Values {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Printf("[%10.3fs]", r.Timestamp)
			for _, name := range names {
				fmt.Printf("  %s=%8.3f", name, r.Values[name])
			}
			fmt.Println()
		}
	}()

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	return conn.Close()
}
