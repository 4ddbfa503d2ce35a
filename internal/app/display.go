package app

import (
	"fmt"
	"image"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// displayData holds the latest reading for the display
type displayData struct {
	mu       sync.RWMutex
	values   map[string]float64
	haveData bool
}

// RunDisplay shows configured telemetry channels on an SSD1306 OLED. Like
// the other consumers it feeds off the UDP stream, so it can run on the
// same host as the streamer or any host on the telemetry path.
func RunDisplay() error {
	cfg := config.Get()

	channels := strings.Split(cfg.DisplayChannels, ",")
	if cfg.DisplayChannels == "" {
		channels = []string{telemetry.ChanAccelX, telemetry.ChanAccelY,
			telemetry.ChanAccelZ, telemetry.ChanTemperature}
	}
	for i := range channels {
		channels[i] = strings.TrimSpace(channels[i])
	}
	// The 7x13 face fits four lines on a 64px panel.
	if len(channels) > 4 {
		log.Printf("display: showing only the first 4 of %d configured channels", len(channels))
		channels = channels[:4]
	}

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: initialized")

	data := &displayData{}

	// Receive telemetry over UDP
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: cfg.UDPListenPort})
	if err != nil {
		return fmt.Errorf("display: UDP listen on :%d: %w", cfg.UDPListenPort, err)
	}
	defer conn.Close()
	log.Printf("display: receiving telemetry on :%d", cfg.UDPListenPort)

	go func() {
		buf := make([]byte, 65536)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			r, err := telemetry.Decode(buf[:n])
			if err != nil {
				log.Printf("display: %v", err)
				continue
			}
			data.mu.Lock()
			data.values = r.Values
			data.haveData = true
			data.mu.Unlock()
		}
	}()

	// Redraw loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		data.mu.RLock()
		values := data.values
		have := data.haveData
		data.mu.RUnlock()

		if err := drawChannels(dev, channels, values, have); err != nil {
			log.Printf("display: draw error: %v", err)
		}
	}
	return nil
}

func drawChannels(dev *ssd1306.Dev, channels []string, values map[string]float64, haveData bool) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Telemetry"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		y := 13
		for _, name := range channels {
			drawer.Dot = fixed.P(0, y)
			if v, ok := values[name]; ok {
				drawer.DrawBytes([]byte(fmt.Sprintf("%-9s%7.2f", shortName(name), v)))
			} else {
				drawer.DrawBytes([]byte(fmt.Sprintf("%-9s   ----", shortName(name))))
			}
			y += 13
		}
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

// shortName trims channel names to fit the 18-column display line.
func shortName(name string) string {
	if len(name) > 9 {
		return name[:9]
	}
	return name
}
