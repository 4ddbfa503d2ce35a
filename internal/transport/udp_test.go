// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package transport

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// listenUDP opens a localhost listener on an ephemeral port and returns it
// with the port number.
func listenUDP(t *testing.T) (*net.UDPConn, int) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, conn.LocalAddr().(*net.UDPAddr).Port
}

func TestUDPSendDeliversDatagram(t *testing.T) {
	listener, port := listenUDP(t)

	u, err := NewUDP("127.0.0.1", port)
	require.NoError(t, err)
	defer u.Close()

	payload := []byte(`{"accel_x":0.01,"timestamp":1.5}`)
	require.NoError(t, u.Send(payload))

	buf := make([]byte, 2048)
	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, buf[:n]))
}

func TestUDPSendOneMessagePerDatagram(t *testing.T) {
	listener, port := listenUDP(t)

	u, err := NewUDP("127.0.0.1", port)
	require.NoError(t, err)
	defer u.Close()

	first := []byte(`{"timestamp":1}`)
	second := []byte(`{"timestamp":2}`)
	require.NoError(t, u.Send(first))
	require.NoError(t, u.Send(second))

	buf := make([]byte, 2048)
	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, first, buf[:n])
	n, _, err = listener.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, second, buf[:n])
}

func TestUDPSendRejectsOversizeMessage(t *testing.T) {
	_, port := listenUDP(t)

	u, err := NewUDP("127.0.0.1", port)
	require.NoError(t, err)
	defer u.Close()

	err = u.Send(make([]byte, maxDatagram+1))
	var txErr *telemetry.TransmitError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, u.Dest(), txErr.Dest)
}

func TestUDPSendReportsWriteFailure(t *testing.T) {
	_, port := listenUDP(t)

	u, err := NewUDP("127.0.0.1", port)
	require.NoError(t, err)
	require.NoError(t, u.Close())

	err = u.Send([]byte(`{"timestamp":1}`))
	var txErr *telemetry.TransmitError
	assert.ErrorAs(t, err, &txErr)
}

func TestNewUDPBadHost(t *testing.T) {
	_, err := NewUDP("host.invalid.", 9870)
	assert.Error(t, err)
}

func TestTeeReturnsPrimaryError(t *testing.T) {
	primaryErr := &telemetry.TransmitError{Dest: "primary", Err: errors.New("down")}
	primary := &stubTx{err: primaryErr}
	mirror := &stubTx{}

	tee := Tee(primary, mirror)
	err := tee.Send([]byte(`{"timestamp":1}`))

	assert.ErrorIs(t, err, primaryErr)
	assert.Equal(t, 1, mirror.sends)
}

func TestTeeIgnoresMirrorError(t *testing.T) {
	primary := &stubTx{}
	mirror := &stubTx{err: errors.New("mirror down")}

	tee := Tee(primary, mirror)
	assert.NoError(t, tee.Send([]byte(`{"timestamp":1}`)))
	assert.Equal(t, 1, primary.sends)
}

type stubTx struct {
	sends int
	err   error
}

func (s *stubTx) Send(msg []byte) error {
	s.sends++
	return s.err
}
