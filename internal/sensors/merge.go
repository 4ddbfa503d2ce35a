package sensors

import (
	"log"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

type mergedSource struct {
	primary telemetry.Source
	extras  []telemetry.Source
}

// Merge combines several sources into one channel set sampled per tick.
// A failed read of the primary source fails the whole tick; a failed extra
// (env sensor glitch, GPS still acquiring) is logged and its channels are
// omitted from that reading only.
func Merge(primary telemetry.Source, extras ...telemetry.Source) telemetry.Source {
	if len(extras) == 0 {
		return primary
	}
	return &mergedSource{primary: primary, extras: extras}
}

func (s *mergedSource) ReadChannels() (map[string]float64, error) {
	values, err := s.primary.ReadChannels()
	if err != nil {
		return nil, err
	}

	for _, extra := range s.extras {
		more, err := extra.ReadChannels()
		if err != nil {
			log.Printf("sensors: extra source read failed, channels omitted this tick: %v", err)
			continue
		}
		for name, v := range more {
			values[name] = v
		}
	}
	return values, nil
}
