// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package transport

import (
	"fmt"
	"net"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// maxDatagram is the largest payload a single UDP datagram can carry.
// Messages must fit one datagram; there is no fragmentation handling.
const maxDatagram = 65507

// UDP sends each message as one datagram to a fixed destination. The socket
// is connected up front so Send is a single non-blocking write; failures
// are reported and the message is dropped, no retry, no buffering.
type UDP struct {
	conn *net.UDPConn
	dest string
}

func NewUDP(host string, port int) (*UDP, error) {
	dest := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	raddr, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve UDP destination %s: %w", dest, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("dial UDP %s: %w", dest, err)
	}
	return &UDP{conn: conn, dest: dest}, nil
}

func (u *UDP) Send(msg []byte) error {
	if len(msg) > maxDatagram {
		return &telemetry.TransmitError{
			Dest: u.dest,
			Err:  fmt.Errorf("message of %d bytes exceeds one datagram", len(msg)),
		}
	}
	if _, err := u.conn.Write(msg); err != nil {
		return &telemetry.TransmitError{Dest: u.dest, Err: err}
	}
	return nil
}

func (u *UDP) Close() error { return u.conn.Close() }

// Dest returns the destination address, for logs.
func (u *UDP) Dest() string { return u.dest }
