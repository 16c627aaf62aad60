package board

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itohio/dvm/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanSource is a Source backed by a caller-fed channel.
type chanSource struct {
	mu         sync.Mutex
	ch         chan uint16
	connected  bool
	connectErr error
	closed     int
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan uint16, 100)}
}

func (s *chanSource) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = true
	return nil
}

func (s *chanSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.closed++
	return nil
}

func (s *chanSource) Samples() <-chan uint16 { return s.ch }

func (s *chanSource) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func TestArm_RequiresHandlers(t *testing.T) {
	b := New(newChanSource(), platform.NewLines(), time.Millisecond)

	assert.ErrorIs(t, b.Arm(context.Background()), ErrNoHandler)

	b.OnConversion(func(uint16) {})
	assert.ErrorIs(t, b.Arm(context.Background()), ErrNoHandler)
}

func TestArm_InvalidTick(t *testing.T) {
	b := New(newChanSource(), platform.NewLines(), 0)
	b.OnConversion(func(uint16) {})
	b.OnTick(func() {})

	assert.Error(t, b.Arm(context.Background()))
}

func TestArm_ConnectError(t *testing.T) {
	src := newChanSource()
	src.connectErr = errors.New("no such port")
	b := New(src, platform.NewLines(), time.Millisecond)
	b.OnConversion(func(uint16) {})
	b.OnTick(func() {})

	err := b.Arm(context.Background())
	assert.ErrorIs(t, err, src.connectErr)
}

func TestArm_Twice(t *testing.T) {
	b := New(newChanSource(), platform.NewLines(), time.Millisecond)
	b.OnConversion(func(uint16) {})
	b.OnTick(func() {})

	require.NoError(t, b.Arm(context.Background()))
	defer b.Close()

	assert.ErrorIs(t, b.Arm(context.Background()), ErrArmed)
}

func TestBoard_DeliversTriggers(t *testing.T) {
	src := newChanSource()
	b := New(src, platform.NewLines(), time.Millisecond)

	var (
		mu    sync.Mutex
		codes []uint16
		ticks atomic.Int32
	)
	b.OnConversion(func(raw uint16) {
		mu.Lock()
		codes = append(codes, raw)
		mu.Unlock()
	})
	b.OnTick(func() { ticks.Add(1) })

	require.NoError(t, b.Arm(context.Background()))
	assert.True(t, src.IsConnected())

	for _, c := range []uint16{1, 2, 3} {
		src.ch <- c
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(codes) == 3 && ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Close())
	assert.False(t, src.IsConnected())

	mu.Lock()
	assert.Equal(t, []uint16{1, 2, 3}, codes)
	mu.Unlock()
}

func TestBoard_HandlersExcludedByMask(t *testing.T) {
	src := newChanSource()
	b := New(src, platform.NewLines(), time.Millisecond)

	var inside atomic.Int32
	var overlap atomic.Bool
	guarded := func() {
		st := b.Disable()
		defer b.Restore(st)
		if inside.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(100 * time.Microsecond)
		inside.Add(-1)
	}
	b.OnConversion(func(uint16) { guarded() })
	b.OnTick(guarded)

	require.NoError(t, b.Arm(context.Background()))
	for i := 0; i < 50; i++ {
		src.ch <- uint16(i)
	}
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, b.Close())

	assert.False(t, overlap.Load(), "handlers overlapped inside a critical section")
}

func TestBoard_ContextCancelStops(t *testing.T) {
	b := New(newChanSource(), platform.NewLines(), time.Millisecond)
	b.OnConversion(func(uint16) {})
	b.OnTick(func() {})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, b.Arm(ctx))
	cancel()

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("board did not stop after context cancel")
	}
}

func TestBoard_DrySourceStops(t *testing.T) {
	src := newChanSource()
	b := New(src, platform.NewLines(), time.Millisecond)
	b.OnConversion(func(uint16) {})
	b.OnTick(func() {})

	require.NoError(t, b.Arm(context.Background()))
	close(src.ch)

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("board did not stop when the source ran dry")
	}
	assert.Equal(t, 1, src.closed)
}

func TestClose_NotArmed(t *testing.T) {
	b := New(newChanSource(), platform.NewLines(), time.Millisecond)
	assert.NoError(t, b.Close())
}
