package telemetry

// Channel names produced by the stock sensor sources. The channel set is
// fixed at startup; consumers key on these names.
const (
	ChanAccelX = "accel_x" // g
	ChanAccelY = "accel_y"
	ChanAccelZ = "accel_z"

	ChanGyroX = "gyro_x" // °/s
	ChanGyroY = "gyro_y"
	ChanGyroZ = "gyro_z"

	ChanTemperature = "temperature" // °C, on-die sensor

	ChanTickError = "tick_error_s" // sampler scheduling error, seconds
)

// Reading is one timestamped snapshot of all configured channel values.
// It is created once per acquisition tick and never mutated afterwards.
type Reading struct {
	Seq       uint64 // diagnostics only, no ordering guarantees derive from it
	Timestamp float64
	Values    map[string]float64
}

// Source is anything that can provide a full set of channel values on demand.
// Implementations: MPU-6050 driver, BMP env sensor, GPS, mock generator.
type Source interface {
	ReadChannels() (map[string]float64, error)
}

// Transmitter delivers one encoded message to a fixed destination,
// best-effort. A failed send drops the message; there is no retry.
type Transmitter interface {
	Send(msg []byte) error
}
