package sensors

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// GPS channel names contributed by the receiver.
const (
	ChanLatitude   = "gps_lat"
	ChanLongitude  = "gps_lon"
	ChanSpeedKnots = "gps_speed_knots"
	ChanCourseDeg  = "gps_course_deg"
	ChanGPSValid   = "gps_valid" // 1 when the last RMC was marked valid
)

// GPSSource parses NMEA sentences from a serial receiver in a background
// goroutine and serves the most recent fix to the sampler. The sampler
// polls; the serial line pushes — the latest-fix buffer bridges the two.
type GPSSource struct {
	port io.ReadWriteCloser

	mu      sync.RWMutex
	latest  map[string]float64
	haveFix bool
}

func NewGPSSource() (*GPSSource, error) {
	cfg := config.Get()

	serialOpts := serial.OpenOptions{
		PortName:        cfg.GPSSerialPort,
		BaudRate:        uint(cfg.GPSBaudRate),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("GPS serial open (%s): %w", cfg.GPSSerialPort, err)
	}
	log.Printf("GPS serial port opened on %s at %d baud", cfg.GPSSerialPort, cfg.GPSBaudRate)

	s := &GPSSource{port: port}
	go s.readLoop()
	return s, nil
}

// readLoop runs until the serial port is closed.
func (s *GPSSource) readLoop() {
	reader := bufio.NewReader(s.port)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("GPS read error, stopping reader: %v", err)
			return
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// Noisy receivers emit partial sentences; skip them.
			continue
		}

		if sentence.DataType() != nmea.TypeRMC {
			continue
		}
		m := sentence.(nmea.RMC)

		valid := 0.0
		if m.Validity == "A" {
			valid = 1.0
		}

		s.mu.Lock()
		s.latest = map[string]float64{
			ChanLatitude:   m.Latitude,
			ChanLongitude:  m.Longitude,
			ChanSpeedKnots: m.Speed,
			ChanCourseDeg:  m.Course,
			ChanGPSValid:   valid,
		}
		s.haveFix = true
		s.mu.Unlock()
	}
}

// ReadChannels returns the most recent fix. Before the first RMC arrives
// there is nothing to report, which the merged source treats as
// channels-omitted rather than a failed tick.
func (s *GPSSource) ReadChannels() (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.haveFix {
		return nil, fmt.Errorf("GPS: no fix received yet")
	}
	out := make(map[string]float64, len(s.latest))
	for name, v := range s.latest {
		out[name] = v
	}
	return out, nil
}

func (s *GPSSource) Close() error { return s.port.Close() }

var _ telemetry.Source = (*GPSSource)(nil)
