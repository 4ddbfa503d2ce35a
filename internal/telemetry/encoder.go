package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
)

// timestampField is the reserved key carrying the Reading timestamp in the
// wire format. Channel names must not collide with it.
const timestampField = "timestamp"

// Encode serializes a Reading into one self-describing JSON datagram, e.g.
//
//	{"accel_x":0.01,"accel_y":-0.02,"gyro_z":1.5,"timestamp":12.3}
//
// Encoding is deterministic: json.Marshal emits map keys in sorted order.
//
// Channels whose value is NaN or ±Inf cannot be represented in JSON. They
// are dropped from the message and an *EncodingError naming them is
// returned alongside the still-usable message; the caller decides whether
// to log it. Encode never fails a whole message because of one bad channel.
func Encode(r Reading) ([]byte, error) {
	fields := make(map[string]float64, len(r.Values)+1)
	fields[timestampField] = r.Timestamp

	var dropped []string
	for name, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			dropped = append(dropped, name)
			continue
		}
		fields[name] = v
	}

	msg, err := json.Marshal(fields)
	if err != nil {
		// All values are finite float64 at this point; Marshal cannot fail.
		return nil, err
	}

	if len(dropped) > 0 {
		return msg, &EncodingError{Dropped: dropped}
	}
	return msg, nil
}

// Decode parses a wire message back into a Reading. It is the inverse of
// Encode modulo channels dropped for non-finite values, and is what the
// console, web, and display consumers run on every received datagram.
func Decode(msg []byte) (Reading, error) {
	var fields map[string]float64
	if err := json.Unmarshal(msg, &fields); err != nil {
		return Reading{}, fmt.Errorf("malformed telemetry message: %w", err)
	}

	ts, ok := fields[timestampField]
	if !ok {
		return Reading{}, fmt.Errorf("telemetry message has no %q field", timestampField)
	}
	delete(fields, timestampField)

	return Reading{Timestamp: ts, Values: fields}, nil
}
