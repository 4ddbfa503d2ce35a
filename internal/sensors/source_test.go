package sensors

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

func TestMockSourceProducesFiniteIMUChannels(t *testing.T) {
	src := NewMockSource()

	values, err := src.ReadChannels()
	require.NoError(t, err)

	for _, name := range []string{
		telemetry.ChanAccelX, telemetry.ChanAccelY, telemetry.ChanAccelZ,
		telemetry.ChanGyroX, telemetry.ChanGyroY, telemetry.ChanGyroZ,
		telemetry.ChanTemperature,
	} {
		v, ok := values[name]
		require.True(t, ok, "channel %s missing", name)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "channel %s not finite", name)
	}
}

type fixedSource struct {
	values map[string]float64
	err    error
}

func (f *fixedSource) ReadChannels() (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out, nil
}

func TestMergeCombinesChannels(t *testing.T) {
	primary := &fixedSource{values: map[string]float64{"accel_x": 1}}
	extra := &fixedSource{values: map[string]float64{"pressure_pa": 101325}}

	values, err := Merge(primary, extra).ReadChannels()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"accel_x": 1, "pressure_pa": 101325}, values)
}

func TestMergePrimaryFailureFailsTick(t *testing.T) {
	primary := &fixedSource{err: errors.New("i2c bus timeout")}
	extra := &fixedSource{values: map[string]float64{"pressure_pa": 101325}}

	_, err := Merge(primary, extra).ReadChannels()
	assert.Error(t, err)
}

func TestMergeExtraFailureOmitsChannelsOnly(t *testing.T) {
	primary := &fixedSource{values: map[string]float64{"accel_x": 1}}
	broken := &fixedSource{err: errors.New("no fix received yet")}
	working := &fixedSource{values: map[string]float64{"env_temperature": 21.5}}

	values, err := Merge(primary, broken, working).ReadChannels()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"accel_x": 1, "env_temperature": 21.5}, values)
}

func TestMergeWithoutExtrasReturnsPrimary(t *testing.T) {
	primary := &fixedSource{values: map[string]float64{"accel_x": 1}}
	assert.Same(t, telemetry.Source(primary), Merge(primary))
}
