package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(seq uint64) Reading {
	return Reading{Seq: seq, Timestamp: float64(seq), Values: map[string]float64{"v": float64(seq)}}
}

func TestQueuePushPopOrder(t *testing.T) {
	q := NewQueue(4)
	stop := make(chan struct{})

	for i := uint64(1); i <= 3; i++ {
		q.Push(reading(i))
	}
	require.Equal(t, 3, q.Len())

	for i := uint64(1); i <= 3; i++ {
		r, ok := q.Pop(stop)
		require.True(t, ok)
		assert.Equal(t, i, r.Seq)
	}
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, uint64(0), q.Dropped())
}

func TestQueueOverflowKeepsMostRecent(t *testing.T) {
	const capacity = 3
	q := NewQueue(capacity)
	stop := make(chan struct{})

	// Ten pushes into a queue of three with no consumer: the seven oldest
	// are evicted, the three newest survive in production order.
	for i := uint64(1); i <= 10; i++ {
		q.Push(reading(i))
	}

	assert.Equal(t, capacity, q.Len())
	assert.Equal(t, uint64(7), q.Dropped())

	for want := uint64(8); want <= 10; want++ {
		r, ok := q.Pop(stop)
		require.True(t, ok)
		assert.Equal(t, want, r.Seq)
	}
}

func TestQueuePushNeverBlocks(t *testing.T) {
	q := NewQueue(1)
	done := make(chan struct{})
	go func() {
		for i := uint64(0); i < 1000; i++ {
			q.Push(reading(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Push blocked on a full queue")
	}
}

func TestQueuePopUnblocksOnStop(t *testing.T) {
	q := NewQueue(2)
	stop := make(chan struct{})

	popped := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(stop)
		popped <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	close(stop)

	select {
	case ok := <-popped:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not return after stop")
	}
}

func TestQueuePopAfterStopOnEmptyQueue(t *testing.T) {
	q := NewQueue(2)
	stop := make(chan struct{})
	close(stop)

	_, ok := q.Pop(stop)
	assert.False(t, ok)
}
