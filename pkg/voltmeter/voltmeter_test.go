package voltmeter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/board"
	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manual is a platform whose triggers are fired by the test.
type manual struct {
	platform.Mask
	*platform.Lines

	conversion platform.ConversionHandler
	tick       platform.TickHandler
	armed      bool
	armErr     error
}

func newManual() *manual {
	return &manual{Lines: platform.NewLines()}
}

func (m *manual) OnConversion(h platform.ConversionHandler) { m.conversion = h }
func (m *manual) OnTick(h platform.TickHandler)             { m.tick = h }

func (m *manual) Arm(context.Context) error {
	if m.armErr != nil {
		return m.armErr
	}
	m.armed = true
	return nil
}

func TestNew_RegistersButDoesNotArm(t *testing.T) {
	p := newManual()

	v, err := New(p, calib.Default(), 50)
	require.NoError(t, err)

	assert.NotNil(t, p.conversion)
	assert.NotNil(t, p.tick)
	assert.False(t, p.armed)
	assert.Equal(t, uint16(0), v.Reading())
	assert.InDelta(t, 0.8699052, v.Scale(), 1e-6)

	require.NoError(t, v.Start(context.Background()))
	assert.True(t, p.armed)
}

func TestNew_InvalidCalibration(t *testing.T) {
	p := newManual()

	_, err := New(p, calib.Calibration{}, 50)
	assert.ErrorIs(t, err, calib.ErrRealMax)
	assert.Nil(t, p.conversion)
}

func TestStart_ArmError(t *testing.T) {
	p := newManual()
	p.armErr = errors.New("boom")

	v, err := New(p, calib.Default(), 50)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Start(context.Background()), p.armErr)
}

func TestVoltmeter_SampleToDisplay(t *testing.T) {
	p := newManual()
	cal := calib.Calibration{RealMaxMV: 24000, MeasuredMaxMV: 24000, FullScale: 1023}

	v, err := New(p, cal, 50)
	require.NoError(t, err)
	require.NoError(t, v.Start(context.Background()))

	for i := 0; i < 50; i++ {
		p.conversion(512)
	}
	assert.Equal(t, uint16(120), v.Reading())
	assert.InDelta(t, 12.0, v.Volts(), 1e-5)

	var digits [3]uint8
	p.OnChange(func(s platform.Snapshot) {
		if s.Selected != platform.NoDigit {
			digits[s.Selected] = s.BCD
		}
	})
	for i := 0; i < 3; i++ {
		p.tick()
	}
	assert.Equal(t, [3]uint8{0, 2, 1}, digits)
}

func TestVoltmeter_EndToEndMock(t *testing.T) {
	cal := calib.Calibration{RealMaxMV: 24000, MeasuredMaxMV: 24000, FullScale: 1023}
	src := adc.NewMock(&config.MockConfig{
		InputMV:    12000,
		NoiseMV:    0,
		SampleRate: 200 * time.Microsecond,
	}, cal)
	lines := platform.NewLines()
	b := board.New(src, lines, time.Millisecond)

	v, err := New(b, cal, 50)
	require.NoError(t, err)
	require.NoError(t, v.Start(context.Background()))
	defer b.Close()

	// 12000mV -> code 512 -> 12.0V
	assert.Eventually(t, func() bool {
		return v.Reading() == 120
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return lines.Snapshot().Selected != platform.NoDigit
	}, time.Second, time.Millisecond)
}
