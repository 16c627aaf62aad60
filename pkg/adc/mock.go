package adc

import (
	"context"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/config"
)

// Mock simulates a free-running converter behind the input divider.
type Mock struct {
	cfg *config.MockConfig
	cal calib.Calibration

	samples   chan uint16
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime time.Time
	inputMV   float32
}

// NewMock creates a new simulated source.
func NewMock(cfg *config.MockConfig, cal calib.Calibration) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			InputMV:    12300,
			NoiseMV:    50,
			SampleRate: time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:     cfg,
		cal:     cal,
		samples: make(chan uint16, DefaultBufferSize),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		inputMV: float32(cfg.InputMV),
	}
}

// Connect starts the simulated conversions.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return ErrConnected
	}

	m.connected = true
	m.startTime = time.Now()

	go m.generateSamples()

	return nil
}

// Close stops the simulation and waits for the samples channel to close.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.cancel()
	m.connected = false
	m.mu.Unlock()

	<-m.done
	return nil
}

// Samples returns the channel for reading conversions.
func (m *Mock) Samples() <-chan uint16 {
	return m.samples
}

// IsConnected returns whether the simulation is running.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// SetInput changes the simulated input voltage (mV, before the divider).
func (m *Mock) SetInput(mv float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}
	m.inputMV = float32(mv)
	return nil
}

// Input returns the simulated input voltage (mV).
func (m *Mock) Input() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float64(m.inputMV)
}

// generateSamples produces conversions at the configured rate.
func (m *Mock) generateSamples() {
	defer close(m.done)
	defer close(m.samples)

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			select {
			case m.samples <- m.generateSample(now):
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateSample converts the simulated input at time now into a raw code.
func (m *Mock) generateSample(now time.Time) uint16 {
	m.mu.RLock()
	input := m.inputMV
	elapsed := float32(now.Sub(m.startTime).Seconds())
	m.mu.RUnlock()

	noise := (math32.Sin(elapsed*2*math32.Pi*50) + math32.Cos(elapsed*2*math32.Pi*130)) *
		float32(m.cfg.NoiseMV) * 0.5

	return m.code(input + noise)
}

// code converts an input voltage (mV) into the code the converter would report.
func (m *Mock) code(inputMV float32) uint16 {
	if !(m.cal.RealMaxMV > 0) || !(m.cal.MeasuredMaxMV > 0) {
		return 0
	}
	// voltage at the converter after the divider
	seen := inputMV * m.cal.MeasuredMaxMV / m.cal.RealMaxMV
	full := float32(m.cal.FullScale)

	v := math32.Floor(seen/m.cal.MeasuredMaxMV*full + 0.5)
	if v < 0 {
		v = 0
	} else if v > full {
		v = full
	}
	return uint16(v)
}
