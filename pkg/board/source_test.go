package board

import (
	"testing"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	cfg := config.Default()

	src, err := NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &adc.Mock{}, src)

	cfg.Source.Kind = config.SourceSerial
	src, err = NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &adc.Serial{}, src)
	assert.False(t, src.IsConnected())

	cfg.Source.Kind = "bogus"
	_, err = NewSource(cfg)
	assert.ErrorIs(t, err, config.ErrSource)
}
