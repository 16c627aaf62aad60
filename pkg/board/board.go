// Package board runs the voltmeter triggers on a hosted operating system:
// conversions come from an adc.Source and ticks from a ticker.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/platform"
)

var _ platform.Platform = (*Board)(nil)

var (
	ErrArmed     = errors.New("board already armed")
	ErrNoHandler = errors.New("trigger handler not registered")
)

// Board is a hosted platform. Each trigger is delivered by its own goroutine,
// so a handler never runs concurrently with itself.
type Board struct {
	platform.Mask
	platform.Outputs

	source adc.Source
	tick   time.Duration

	mu           sync.Mutex
	onConversion platform.ConversionHandler
	onTick       platform.TickHandler
	armed        bool
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	done         chan struct{}
}

// New creates a board taking conversions from source, ticking every tick and
// driving out.
func New(source adc.Source, out platform.Outputs, tick time.Duration) *Board {
	return &Board{
		Outputs: out,
		source:  source,
		tick:    tick,
		done:    make(chan struct{}),
	}
}

// OnConversion registers the conversion-complete handler.
func (b *Board) OnConversion(h platform.ConversionHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onConversion = h
}

// OnTick registers the periodic tick handler.
func (b *Board) OnTick(h platform.TickHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTick = h
}

// Arm connects the source and starts both triggers. The triggers run until
// ctx is cancelled, Close is called or the source runs dry.
func (b *Board) Arm(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.armed {
		return ErrArmed
	}
	if b.onConversion == nil || b.onTick == nil {
		return ErrNoHandler
	}
	if b.tick <= 0 {
		return fmt.Errorf("invalid tick period %v", b.tick)
	}

	if !b.source.IsConnected() {
		if err := b.source.Connect(); err != nil {
			return fmt.Errorf("failed to connect conversion source: %w", err)
		}
	}

	ctx, b.cancel = context.WithCancel(ctx)
	b.armed = true

	b.wg.Add(2)
	go b.convert(ctx, b.onConversion)
	go b.ticker(ctx, b.onTick)

	go func() {
		<-ctx.Done()
		b.source.Close()
		b.wg.Wait()
		close(b.done)
	}()

	return nil
}

// Close stops both triggers and waits for them to finish.
func (b *Board) Close() error {
	b.mu.Lock()
	armed := b.armed
	cancel := b.cancel
	b.mu.Unlock()

	if !armed {
		return nil
	}
	cancel()
	<-b.done
	return nil
}

// Done is closed once both triggers have stopped.
func (b *Board) Done() <-chan struct{} {
	return b.done
}

func (b *Board) convert(ctx context.Context, h platform.ConversionHandler) {
	defer b.wg.Done()
	// A dry source stops the whole board.
	defer b.cancel()

	samples := b.source.Samples()
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-samples:
			if !ok {
				return
			}
			h(raw)
		}
	}
}

func (b *Board) ticker(ctx context.Context, h platform.TickHandler) {
	defer b.wg.Done()

	t := time.NewTicker(b.tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h()
		}
	}
}
