package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// UDP telemetry destination (the visualization consumer, e.g. PlotJuggler)
	UDPTargetHost string
	UDPTargetPort int

	// Sampling
	SampleIntervalMS int // milliseconds between acquisition ticks
	QueueCapacity    int // bounded queue between sampler and transmitter
	ShutdownGraceMS  int // max wait for goroutines to exit on stop

	// MPU-6050 hardware
	I2CBus     string // e.g. "1" or "/dev/i2c-1"; empty picks the first bus
	MPUI2CAddr uint16
	// Accelerometer: 0=±2g, 1=±4g, 2=±8g, 3=±16g
	AccelRange byte
	// Gyroscope: 0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s
	GyroRange     byte
	DLPFConfig    byte // Digital Low Pass Filter configuration (0-7)
	SampleRateDiv byte // device output rate = internal rate / (1 + div)

	// Optional BMP280 environment sensor (pressure + ambient temperature)
	EnvEnable  bool
	EnvI2CAddr uint16

	// Optional GPS receiver
	GPSEnable     bool
	GPSSerialPort string
	GPSBaudRate   int

	// Optional MQTT mirror of the telemetry stream
	MQTTEnable   bool
	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string

	// Consumers
	UDPListenPort         int // port the console/web/display consumers bind
	WebServerPort         int
	DisplayUpdateInterval int    // milliseconds
	DisplayChannels       string // comma-separated channel names to show
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock for
//     initialization, read lock for Get() allows concurrent readers.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// UDP destination
	case "UDP_TARGET_HOST":
		c.UDPTargetHost = value
	case "UDP_TARGET_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid UDP_TARGET_PORT %q: %w", value, err)
		}
		c.UDPTargetPort = port

	// Sampling
	case "SAMPLE_INTERVAL_MS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL_MS %q: %w", value, err)
		}
		c.SampleIntervalMS = interval
	case "QUEUE_CAPACITY":
		capVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid QUEUE_CAPACITY %q: %w", value, err)
		}
		if capVal < 1 {
			return fmt.Errorf("QUEUE_CAPACITY must be >= 1, got %d", capVal)
		}
		c.QueueCapacity = capVal
	case "SHUTDOWN_GRACE_MS":
		grace, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_GRACE_MS %q: %w", value, err)
		}
		c.ShutdownGraceMS = grace

	// MPU-6050 hardware
	case "I2C_BUS":
		c.I2CBus = value
	case "MPU_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid MPU_I2C_ADDR %q: %w", value, err)
		}
		c.MPUI2CAddr = uint16(addr)
	case "ACCEL_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ACCEL_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("ACCEL_RANGE must be 0-3 (0=±2g, 1=±4g, 2=±8g, 3=±16g), got %d", rangeVal)
		}
		c.AccelRange = byte(rangeVal)
	case "GYRO_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GYRO_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("GYRO_RANGE must be 0-3 (0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s), got %d", rangeVal)
		}
		c.GyroRange = byte(rangeVal)
	case "DLPF_CFG":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DLPF_CFG %q: %w", value, err)
		}
		if val < 0 || val > 7 {
			return fmt.Errorf("DLPF_CFG must be 0-7, got %d", val)
		}
		c.DLPFConfig = byte(val)
	case "SAMPLE_RATE_DIV":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_RATE_DIV %q: %w", value, err)
		}
		if val < 0 || val > 255 {
			return fmt.Errorf("SAMPLE_RATE_DIV must be 0-255, got %d", val)
		}
		c.SampleRateDiv = byte(val)

	// Environment sensor
	case "ENV_ENABLE":
		enable, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ENV_ENABLE %q: %w", value, err)
		}
		c.EnvEnable = enable
	case "ENV_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid ENV_I2C_ADDR %q: %w", value, err)
		}
		c.EnvI2CAddr = uint16(addr)

	// GPS
	case "GPS_ENABLE":
		enable, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_ENABLE %q: %w", value, err)
		}
		c.GPSEnable = enable
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// MQTT mirror
	case "MQTT_ENABLE":
		enable, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid MQTT_ENABLE %q: %w", value, err)
		}
		c.MQTTEnable = enable
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value
	case "MQTT_TOPIC":
		c.MQTTTopic = value

	// Consumers
	case "UDP_LISTEN_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid UDP_LISTEN_PORT %q: %w", value, err)
		}
		c.UDPListenPort = port
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval
	case "DISPLAY_CHANNELS":
		c.DisplayChannels = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// applyDefaults fills in values that are safe to assume when unset.
func (c *Config) applyDefaults() {
	if c.QueueCapacity == 0 {
		c.QueueCapacity = 8
	}
	if c.ShutdownGraceMS == 0 {
		c.ShutdownGraceMS = 2000
	}
	if c.MPUI2CAddr == 0 {
		c.MPUI2CAddr = 0x68
	}
	if c.EnvI2CAddr == 0 {
		c.EnvI2CAddr = 0x76
	}
	if c.UDPListenPort == 0 {
		c.UDPListenPort = c.UDPTargetPort
	}
	if c.MQTTClientID == "" {
		c.MQTTClientID = "telemetry-bridge"
	}
	if c.MQTTTopic == "" {
		c.MQTTTopic = "telemetry/imu"
	}
	if c.DisplayUpdateInterval == 0 {
		c.DisplayUpdateInterval = 500
	}
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.UDPTargetHost == "" {
		return fmt.Errorf("UDP_TARGET_HOST is required")
	}
	if c.UDPTargetPort == 0 {
		return fmt.Errorf("UDP_TARGET_PORT is required")
	}
	if c.SampleIntervalMS == 0 {
		return fmt.Errorf("SAMPLE_INTERVAL_MS is required")
	}
	if c.GPSEnable && c.GPSSerialPort == "" {
		return fmt.Errorf("GPS_SERIAL_PORT is required when GPS_ENABLE is set")
	}
	if c.GPSEnable && c.GPSBaudRate == 0 {
		return fmt.Errorf("GPS_BAUD_RATE is required when GPS_ENABLE is set")
	}
	if c.MQTTEnable && c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required when MQTT_ENABLE is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
