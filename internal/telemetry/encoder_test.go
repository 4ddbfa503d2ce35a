package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := Reading{
		Seq:       7,
		Timestamp: 12.345,
		Values: map[string]float64{
			ChanAccelX:      0.012,
			ChanAccelY:      -0.98,
			ChanAccelZ:      1.002,
			ChanGyroX:       -1.5,
			ChanGyroY:       0.25,
			ChanGyroZ:       180.0,
			ChanTemperature: 36.53,
		},
	}

	msg, err := Encode(r)
	require.NoError(t, err)

	got, err := Decode(msg)
	require.NoError(t, err)

	assert.Equal(t, r.Timestamp, got.Timestamp)
	assert.Equal(t, r.Values, got.Values)
}

func TestEncodeIsDeterministic(t *testing.T) {
	r := Reading{
		Timestamp: 1.0,
		Values: map[string]float64{
			ChanGyroZ:  3,
			ChanAccelX: 1,
			ChanGyroX:  2,
		},
	}

	first, err := Encode(r)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Encode(r)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeDropsNonFiniteChannels(t *testing.T) {
	r := Reading{
		Timestamp: 2.5,
		Values: map[string]float64{
			ChanAccelX:      0.5,
			ChanTemperature: math.NaN(),
		},
	}

	msg, err := Encode(r)

	// Partial message plus a diagnostic, never a silent full drop.
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, []string{ChanTemperature}, encErr.Dropped)

	got, decErr := Decode(msg)
	require.NoError(t, decErr)
	assert.Equal(t, 0.5, got.Values[ChanAccelX])
	assert.NotContains(t, got.Values, ChanTemperature)
}

func TestEncodeDropsInfinities(t *testing.T) {
	r := Reading{
		Timestamp: 0,
		Values: map[string]float64{
			"a": math.Inf(1),
			"b": math.Inf(-1),
			"c": 1.0,
		},
	}

	msg, err := Encode(r)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.ElementsMatch(t, []string{"a", "b"}, encErr.Dropped)

	got, decErr := Decode(msg)
	require.NoError(t, decErr)
	assert.Equal(t, map[string]float64{"c": 1.0}, got.Values)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	// Valid JSON without a timestamp is not a telemetry message.
	_, err = Decode([]byte(`{"accel_x": 1.0}`))
	assert.Error(t, err)
}
