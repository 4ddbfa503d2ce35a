// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// State tracks the bridge through its process lifetime.
type State int32

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	}
	return "unknown"
}

var (
	ErrAlreadyRunning = errors.New("bridge already running")
	ErrNotRunning     = errors.New("bridge not running")
)

// Options configures a Bridge.
type Options struct {
	Interval time.Duration // sampler tick interval
	Capacity int           // queue capacity
	Grace    time.Duration // max wait for goroutines to exit on Stop
}

// Bridge couples a sampler and a transmitter through a bounded drop-oldest
// queue. The sampler goroutine reads the Source at a fixed interval; the
// transmitter goroutine encodes and sends whatever the queue yields. The
// two share no state beyond the queue, so a stalled network never delays
// acquisition. No error on either side is fatal: bad ticks are skipped,
// failed sends are dropped, and the bridge keeps running.
type Bridge struct {
	src   Source
	tx    Transmitter
	queue *Queue

	interval time.Duration
	grace    time.Duration

	state atomic.Int32
	stop  chan struct{}
	wg    sync.WaitGroup

	seq   uint64
	start time.Time
	stats LoopStats
}

func NewBridge(src Source, tx Transmitter, opts Options) *Bridge {
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Millisecond
	}
	if opts.Capacity < 1 {
		opts.Capacity = 8
	}
	if opts.Grace <= 0 {
		opts.Grace = 2 * time.Second
	}
	return &Bridge{
		src:      src,
		tx:       tx,
		queue:    NewQueue(opts.Capacity),
		interval: opts.Interval,
		grace:    opts.Grace,
	}
}

// Start spins up the sampler and transmitter goroutines.
func (b *Bridge) Start() error {
	if !b.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		return ErrAlreadyRunning
	}

	b.stop = make(chan struct{})
	b.start = time.Now()
	b.seq = 0
	b.stats = LoopStats{}

	b.wg.Add(2)
	go b.sampleLoop()
	go b.transmitLoop()

	b.state.Store(int32(StateRunning))
	log.Printf("bridge: running (interval=%s capacity=%d)", b.interval, b.queue.Cap())
	return nil
}

// Stop signals both goroutines and waits for them to exit, bounded by the
// configured grace period. Readings still queued when Stop is called are
// not guaranteed to be delivered.
func (b *Bridge) Stop() error {
	if !b.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return ErrNotRunning
	}
	close(b.stop)

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(b.grace):
		log.Printf("bridge: goroutines did not exit within %s grace period", b.grace)
	}

	b.state.Store(int32(StateStopped))
	log.Printf("bridge: stopped, loop timing %s, %d reading(s) dropped on overflow",
		b.stats.String(), b.queue.Dropped())
	return nil
}

func (b *Bridge) State() State { return State(b.state.Load()) }

// Dropped reports how many readings were evicted from the queue so far.
func (b *Bridge) Dropped() uint64 { return b.queue.Dropped() }

// sampleLoop acquires one Reading per tick. An acquisition failure skips
// the tick; the ticker keeps its cadence so there is no retry storm.
func (b *Bridge) sampleLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-b.stop:
			return
		case t := <-ticker.C:
			var tickErr float64
			if !last.IsZero() {
				tickErr = t.Sub(last).Seconds() - b.interval.Seconds()
				b.stats.Update(tickErr)
			}
			last = t

			values, err := b.src.ReadChannels()
			if err != nil {
				log.Printf("bridge: %v (tick skipped)", &AcquisitionError{Err: err})
				continue
			}
			b.seq++
			values[ChanTickError] = tickErr

			b.queue.Push(Reading{
				Seq:       b.seq,
				Timestamp: t.Sub(b.start).Seconds(),
				Values:    values,
			})
		}
	}
}

// transmitLoop drains the queue. Encoding diagnostics and send failures are
// logged and never propagate back to the sampler.
func (b *Bridge) transmitLoop() {
	defer b.wg.Done()

	for {
		r, ok := b.queue.Pop(b.stop)
		if !ok {
			return
		}

		msg, err := Encode(r)
		if err != nil {
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				log.Printf("bridge: encode error, reading %d dropped: %v", r.Seq, err)
				continue
			}
			// Partial message: bad channels were dropped, the rest goes out.
			log.Printf("bridge: reading %d: %v", r.Seq, encErr)
		}

		if err := b.tx.Send(msg); err != nil {
			log.Printf("bridge: reading %d dropped: %v", r.Seq, err)
		}
	}
}
