package telemetry

import (
	"fmt"
	"math"
)

// LoopStats accumulates sampler scheduling error statistics using Welford's
// online algorithm. Errors are in seconds (actual tick spacing minus the
// configured interval).
type LoopStats struct {
	N     int
	Mean  float64
	m2    float64
	Worst float64
}

func (s *LoopStats) Update(err float64) {
	s.N++
	delta := err - s.Mean
	s.Mean += delta / float64(s.N)
	s.m2 += delta * (err - s.Mean)
	if math.Abs(err) > math.Abs(s.Worst) {
		s.Worst = err
	}
}

func (s *LoopStats) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	return s.m2 / float64(s.N-1)
}

func (s *LoopStats) Stddev() float64 { return math.Sqrt(s.Variance()) }

func (s *LoopStats) String() string {
	return fmt.Sprintf("n=%d mean=%.3fus stddev=%.3fus worst=%.3fus",
		s.N, s.Mean*1e6, s.Stddev()*1e6, s.Worst*1e6)
}
