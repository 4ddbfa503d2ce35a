// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/telemetry_bridge/internal/config"
	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// MPU6050 drives the 6-axis IMU over I2C. The handle is owned by the
// sampler that created it; there is no process-wide device singleton.
type MPU6050 struct {
	bus i2c.BusCloser
	dev *i2c.Dev

	accelScale float64 // LSB per g
	gyroScale  float64 // LSB per °/s
}

// NewMPU6050 opens the configured I2C bus, verifies the device identity,
// and programs clock source, full-scale ranges, DLPF, and sample rate.
func NewMPU6050() (*MPU6050, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("I2C bus open (%q): %w", cfg.I2CBus, err)
	}

	m := &MPU6050{
		bus:        bus,
		dev:        &i2c.Dev{Bus: bus, Addr: cfg.MPUI2CAddr},
		accelScale: accelLSBPerG[cfg.AccelRange],
		gyroScale:  gyroLSBPerDps[cfg.GyroRange],
	}

	if err := m.init(cfg); err != nil {
		bus.Close()
		return nil, err
	}
	return m, nil
}

func (m *MPU6050) init(cfg *config.Config) error {
	// Reset, then give the device time to come back.
	if err := m.writeReg(regPwrMgmt1, pwrDeviceReset); err != nil {
		return fmt.Errorf("MPU6050 reset: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	id, err := m.readReg(regWhoAmI)
	if err != nil {
		return fmt.Errorf("MPU6050 WHO_AM_I read: %w", err)
	}
	if id != whoAmIValue {
		return fmt.Errorf("MPU6050 WHO_AM_I mismatch: got 0x%02X, want 0x%02X", id, whoAmIValue)
	}

	// Wake from the post-reset sleep and clock off the X gyro PLL, which is
	// more stable than the internal oscillator.
	if err := m.writeReg(regPwrMgmt1, clkselPLLXGyro); err != nil {
		return fmt.Errorf("MPU6050 clock select: %w", err)
	}

	if err := m.writeReg(regGyroConfig, cfg.GyroRange<<3); err != nil {
		return fmt.Errorf("MPU6050 set gyro range: %w", err)
	}
	log.Printf("MPU6050: gyroscope range set to %d (±%d°/s)", cfg.GyroRange, gyroRangeDps[cfg.GyroRange])

	if err := m.writeReg(regAccelConfig, cfg.AccelRange<<3); err != nil {
		return fmt.Errorf("MPU6050 set accel range: %w", err)
	}
	log.Printf("MPU6050: accelerometer range set to %d (±%dg)", cfg.AccelRange, accelRangeG[cfg.AccelRange])

	if err := m.writeReg(regConfig, cfg.DLPFConfig); err != nil {
		return fmt.Errorf("MPU6050 set DLPF config: %w", err)
	}
	if err := m.writeReg(regSmplrtDiv, cfg.SampleRateDiv); err != nil {
		return fmt.Errorf("MPU6050 set sample rate divider: %w", err)
	}
	internalRate := 1000 // 1kHz with DLPF enabled
	if cfg.DLPFConfig == 0 || cfg.DLPFConfig == 7 {
		internalRate = 8000 // 8kHz with DLPF bypassed
	}
	log.Printf("MPU6050: DLPF=%d divider=%d (device output rate: %d Hz)",
		cfg.DLPFConfig, cfg.SampleRateDiv, internalRate/(1+int(cfg.SampleRateDiv)))

	return nil
}

// ReadChannels reads one full measurement set. The 14-byte burst read from
// ACCEL_XOUT_H is a single bus transaction, so accel, temperature, and
// gyro values come from the same device sample.
func (m *MPU6050) ReadChannels() (map[string]float64, error) {
	var raw [burstLen]byte
	if err := m.dev.Tx([]byte{regAccelXoutH}, raw[:]); err != nil {
		return nil, fmt.Errorf("MPU6050 burst read: %w", err)
	}
	return decodeBurst(raw, m.accelScale, m.gyroScale), nil
}

// decodeBurst converts one raw measurement block into physical units:
// accel in g, gyro in °/s, temperature in °C (datasheet formula
// raw/340 + 36.53).
func decodeBurst(raw [burstLen]byte, accelScale, gyroScale float64) map[string]float64 {
	ax := int16(binary.BigEndian.Uint16(raw[0:2]))
	ay := int16(binary.BigEndian.Uint16(raw[2:4]))
	az := int16(binary.BigEndian.Uint16(raw[4:6]))
	t := int16(binary.BigEndian.Uint16(raw[6:8]))
	gx := int16(binary.BigEndian.Uint16(raw[8:10]))
	gy := int16(binary.BigEndian.Uint16(raw[10:12]))
	gz := int16(binary.BigEndian.Uint16(raw[12:14]))

	return map[string]float64{
		telemetry.ChanAccelX:      float64(ax) / accelScale,
		telemetry.ChanAccelY:      float64(ay) / accelScale,
		telemetry.ChanAccelZ:      float64(az) / accelScale,
		telemetry.ChanGyroX:       float64(gx) / gyroScale,
		telemetry.ChanGyroY:       float64(gy) / gyroScale,
		telemetry.ChanGyroZ:       float64(gz) / gyroScale,
		telemetry.ChanTemperature: float64(t)/340.0 + 36.53,
	}
}

// ReadRegister reads a single register, for the register debug tool.
func (m *MPU6050) ReadRegister(addr byte) (byte, error) {
	return m.readReg(addr)
}

// DumpRegisters reads every register in the reference map.
func (m *MPU6050) DumpRegisters() (map[byte]byte, error) {
	out := make(map[byte]byte)
	for _, info := range MPU6050RegisterMap() {
		v, err := m.readReg(info.Address)
		if err != nil {
			return nil, fmt.Errorf("MPU6050 read %s (0x%02X): %w", info.Name, info.Address, err)
		}
		out[info.Address] = v
	}
	return out, nil
}

func (m *MPU6050) Close() error { return m.bus.Close() }

func (m *MPU6050) readReg(addr byte) (byte, error) {
	var b [1]byte
	if err := m.dev.Tx([]byte{addr}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *MPU6050) writeReg(addr, value byte) error {
	return m.dev.Tx([]byte{addr, value}, nil)
}
