package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopStatsWelford(t *testing.T) {
	var s LoopStats
	for _, v := range []float64{0.001, -0.002, 0.003, 0.000} {
		s.Update(v)
	}

	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 0.0005, s.Mean, 1e-9)
	// Sample variance of {1, -2, 3, 0} ms is 4.333e-6 s^2.
	assert.InDelta(t, 4.333333e-6, s.Variance(), 1e-10)
	assert.Equal(t, 0.003, s.Worst)
}

func TestLoopStatsWorstTracksMagnitude(t *testing.T) {
	var s LoopStats
	s.Update(0.001)
	s.Update(-0.005)
	s.Update(0.002)
	assert.Equal(t, -0.005, s.Worst)
}

func TestLoopStatsEmpty(t *testing.T) {
	var s LoopStats
	assert.Equal(t, 0.0, s.Variance())
	assert.Equal(t, 0.0, s.Stddev())
	s.Update(0.001)
	assert.Equal(t, 0.0, s.Variance())
}
