package sensors

import (
	"math"
	"time"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

type mockSource struct {
	start time.Time
}

// NewMockSource creates a sensor source that generates smooth changing
// values for every IMU channel, for development without hardware.
func NewMockSource() telemetry.Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) ReadChannels() (map[string]float64, error) {
	elapsed := time.Since(m.start).Seconds()

	return map[string]float64{
		telemetry.ChanAccelX:      0.2 * math.Sin(elapsed),
		telemetry.ChanAccelY:      0.2 * math.Cos(elapsed*0.7),
		telemetry.ChanAccelZ:      1.0 + 0.05*math.Sin(elapsed*0.3),
		telemetry.ChanGyroX:       20 * math.Sin(elapsed*1.3),
		telemetry.ChanGyroY:       15 * math.Cos(elapsed),
		telemetry.ChanGyroZ:       math.Mod(elapsed*30, 360) - 180,
		telemetry.ChanTemperature: 36.5 + 2*math.Sin(elapsed*0.1),
	}, nil
}
