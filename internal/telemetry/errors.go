package telemetry

import (
	"fmt"
	"strings"
)

// AcquisitionError reports a failed sensor read. The owning tick is skipped
// and acquisition resumes at the next scheduled interval.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("acquisition from %s failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("acquisition failed: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// EncodingError reports channels dropped from a message because their values
// were not finite. The remaining channels are still encoded and sent.
type EncodingError struct {
	Dropped []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("non-finite channel values dropped: %s", strings.Join(e.Dropped, ", "))
}

// TransmitError reports a failed send. The message is dropped.
type TransmitError struct {
	Dest string
	Err  error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("transmit to %s failed: %v", e.Dest, e.Err)
}

func (e *TransmitError) Unwrap() error { return e.Err }
