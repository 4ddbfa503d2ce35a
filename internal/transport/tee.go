package transport

import (
	"log"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

type tee struct {
	primary telemetry.Transmitter
	mirrors []telemetry.Transmitter
}

// Tee sends every message to the primary transmitter and best-effort to
// each mirror. Only the primary's error is returned; mirror failures are
// logged and otherwise ignored.
func Tee(primary telemetry.Transmitter, mirrors ...telemetry.Transmitter) telemetry.Transmitter {
	if len(mirrors) == 0 {
		return primary
	}
	return &tee{primary: primary, mirrors: mirrors}
}

func (t *tee) Send(msg []byte) error {
	for _, m := range t.mirrors {
		if err := m.Send(msg); err != nil {
			log.Printf("transport: mirror send failed: %v", err)
		}
	}
	return t.primary.Send(msg)
}
