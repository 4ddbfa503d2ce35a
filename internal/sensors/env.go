package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// Environment channel names contributed by the BMP280.
const (
	ChanPressurePa = "pressure_pa"
	ChanEnvTemp    = "env_temperature"
)

// EnvSource reads a BMP280 on the same I2C bus as the IMU and contributes
// barometric pressure and ambient temperature channels.
type EnvSource struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

func NewEnvSource() (*EnvSource, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("env sensor I2C open (%q): %w", cfg.I2CBus, err)
	}

	dev, err := bmxx80.NewI2C(bus, cfg.EnvI2CAddr, &bmxx80.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("BMP280 init at 0x%02X: %w", cfg.EnvI2CAddr, err)
	}

	return &EnvSource{bus: bus, dev: dev}, nil
}

func (s *EnvSource) ReadChannels() (map[string]float64, error) {
	var e physic.Env
	if err := s.dev.Sense(&e); err != nil {
		return nil, fmt.Errorf("BMP280 sense: %w", err)
	}

	return map[string]float64{
		ChanPressurePa: float64(e.Pressure) / float64(physic.Pascal),
		ChanEnvTemp:    e.Temperature.Celsius(),
	}, nil
}

func (s *EnvSource) Close() error {
	s.dev.Halt()
	return s.bus.Close()
}

var _ telemetry.Source = (*EnvSource)(nil)
