package adc

import (
	"testing"
	"time"

	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/config"
	"github.com/stretchr/testify/assert"
)

// TestMock_GracefulShutdown tests that Mock closes the samples channel
// when Close() is called.
func TestMock_GracefulShutdown(t *testing.T) {
	cfg := &config.MockConfig{
		InputMV:    12000,
		NoiseMV:    20,
		SampleRate: time.Millisecond,
	}

	mock := NewMock(cfg, calib.Default())
	err := mock.Connect()
	assert.NoError(t, err)

	samples := mock.Samples()

	// Read a few samples
	received := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range samples {
			received++
			if received == 3 {
				// Got enough samples, now close device
				go mock.Close()
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Samples channel did not close within timeout")
	}

	assert.GreaterOrEqual(t, received, 3, "Should receive samples before channel closes")

	_, ok := <-samples
	assert.False(t, ok, "Channel should be closed")
	assert.False(t, mock.IsConnected())
}
