package sensors

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	io.Reader
}

func (fakePort) Write(p []byte) (int, error) { return len(p), nil }
func (fakePort) Close() error                { return nil }

// canonical RMC example sentence, checksum included
const rmcSentence = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n"

func newGPSFromLines(lines string) *GPSSource {
	s := &GPSSource{port: fakePort{Reader: strings.NewReader(lines)}}
	go s.readLoop()
	return s
}

func waitForFix(t *testing.T, s *GPSSource) map[string]float64 {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if values, err := s.ReadChannels(); err == nil {
			return values
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no fix parsed before deadline")
	return nil
}

func TestGPSNoFixBeforeFirstSentence(t *testing.T) {
	s := &GPSSource{port: fakePort{Reader: strings.NewReader("")}}
	_, err := s.ReadChannels()
	assert.Error(t, err)
}

func TestGPSParsesRMCFix(t *testing.T) {
	s := newGPSFromLines(rmcSentence)
	values := waitForFix(t, s)

	assert.InDelta(t, 48.1173, values[ChanLatitude], 1e-4)
	assert.InDelta(t, 11.5167, values[ChanLongitude], 1e-4)
	assert.InDelta(t, 22.4, values[ChanSpeedKnots], 1e-9)
	assert.InDelta(t, 84.4, values[ChanCourseDeg], 1e-9)
	assert.Equal(t, 1.0, values[ChanGPSValid])
}

func TestGPSSkipsGarbageLines(t *testing.T) {
	lines := "garbage\n$GPGGA,broken*00\n" + rmcSentence
	s := newGPSFromLines(lines)
	values := waitForFix(t, s)
	assert.Equal(t, 1.0, values[ChanGPSValid])
}

func TestGPSReadChannelsReturnsCopy(t *testing.T) {
	s := newGPSFromLines(rmcSentence)
	first := waitForFix(t, s)
	first[ChanLatitude] = -90

	second, err := s.ReadChannels()
	require.NoError(t, err)
	assert.InDelta(t, 48.1173, second[ChanLatitude], 1e-4)
}
