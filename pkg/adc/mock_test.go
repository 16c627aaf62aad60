package adc

import (
	"testing"
	"time"

	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMock(t *testing.T) {
	cfg := &config.MockConfig{
		InputMV:    5000,
		NoiseMV:    10,
		SampleRate: 2 * time.Millisecond,
	}

	dev := NewMock(cfg, calib.Default())
	assert.NotNil(t, dev)
	assert.Equal(t, cfg, dev.cfg)
	assert.NotNil(t, dev.samples)
	assert.Equal(t, float64(5000), dev.Input())
	assert.False(t, dev.IsConnected())
}

func TestNewMock_NilConfig(t *testing.T) {
	dev := NewMock(nil, calib.Default())
	assert.NotNil(t, dev.cfg)
	assert.Equal(t, float64(12300), dev.cfg.InputMV)
	assert.Equal(t, float64(50), dev.cfg.NoiseMV)
	assert.Equal(t, time.Millisecond, dev.cfg.SampleRate)
}

func TestMock_Code(t *testing.T) {
	dev := NewMock(nil, calib.Default())

	tests := []struct {
		name    string
		inputMV float32
		want    uint16
	}{
		{name: "0V", inputMV: 0, want: 0},
		{name: "full scale", inputMV: 24000, want: 1023},
		{name: "half scale", inputMV: 12000, want: 512}, // 511.5 rounds up
		{name: "12.3V", inputMV: 12300, want: 524},
		{name: "negative clamps", inputMV: -500, want: 0},
		{name: "over range clamps", inputMV: 30000, want: 1023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dev.code(tt.inputMV))
		})
	}
}

func TestMock_CodeInvalidCalibration(t *testing.T) {
	dev := NewMock(nil, calib.Calibration{})
	assert.Equal(t, uint16(0), dev.code(1000))
}

func TestMock_SetInput(t *testing.T) {
	dev := NewMock(nil, calib.Default())

	// Should fail when not connected
	err := dev.SetInput(1000)
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, dev.Connect())
	defer dev.Close()

	require.NoError(t, dev.SetInput(1000))
	assert.Equal(t, float64(1000), dev.Input())
}

func TestMock_Connect_AlreadyConnected(t *testing.T) {
	dev := NewMock(nil, calib.Default())

	require.NoError(t, dev.Connect())
	defer dev.Close()

	assert.ErrorIs(t, dev.Connect(), ErrConnected)
}

func TestMock_Close_NotConnected(t *testing.T) {
	dev := NewMock(nil, calib.Default())
	assert.NoError(t, dev.Close())
}

func TestMock_Close_Connected(t *testing.T) {
	dev := NewMock(nil, calib.Default())

	require.NoError(t, dev.Connect())
	assert.True(t, dev.IsConnected())

	assert.NoError(t, dev.Close())
	assert.False(t, dev.IsConnected())
}

func TestMock_SamplesTrackInput(t *testing.T) {
	cfg := &config.MockConfig{
		InputMV:    6000,
		NoiseMV:    0,
		SampleRate: time.Millisecond,
	}
	dev := NewMock(cfg, calib.Default())
	require.NoError(t, dev.Connect())
	defer dev.Close()

	select {
	case code := <-dev.Samples():
		// 6000 / 24000 * 1023 = 255.75
		assert.Equal(t, uint16(256), code)
	case <-time.After(time.Second):
		t.Fatal("no sample generated")
	}
}
