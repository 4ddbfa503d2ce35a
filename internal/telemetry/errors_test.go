package telemetry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsMatchWithErrorsAs(t *testing.T) {
	cause := errors.New("i2c bus timeout")

	var acq *AcquisitionError
	err := fmt.Errorf("sampler: %w", &AcquisitionError{Source: "mpu6050", Err: cause})
	assert.ErrorAs(t, err, &acq)
	assert.Equal(t, "mpu6050", acq.Source)
	assert.ErrorIs(t, err, cause)

	var tx *TransmitError
	err = fmt.Errorf("send: %w", &TransmitError{Dest: "127.0.0.1:9870", Err: cause})
	assert.ErrorAs(t, err, &tx)
	assert.Equal(t, "127.0.0.1:9870", tx.Dest)
	assert.ErrorIs(t, err, cause)

	var enc *EncodingError
	err = fmt.Errorf("encode: %w", &EncodingError{Dropped: []string{ChanTemperature}})
	assert.ErrorAs(t, err, &enc)
	assert.Equal(t, []string{ChanTemperature}, enc.Dropped)
}

func TestErrorMessagesNameTheSubsystem(t *testing.T) {
	assert.Contains(t, (&AcquisitionError{Err: errors.New("x")}).Error(), "acquisition")
	assert.Contains(t, (&TransmitError{Dest: "h:1", Err: errors.New("x")}).Error(), "h:1")
	assert.Contains(t, (&EncodingError{Dropped: []string{"a"}}).Error(), "a")
}
