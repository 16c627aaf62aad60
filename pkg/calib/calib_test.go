package calib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, float32(24000), c.RealMaxMV)
	assert.Equal(t, float32(4898), c.MeasuredMaxMV)
	assert.Equal(t, uint16(1023), c.FullScale)
	assert.Equal(t, FormulaLegacy, c.Formula)
	require.NoError(t, c.Validate())
}

func TestScaleFactor_Legacy(t *testing.T) {
	c := Default()

	// 100 * (1023 / (24000 * (24000 / 4898)))
	assert.InDelta(t, 0.8699052, c.ScaleFactor(), 1e-6)
	assert.Equal(t, float32(1175), c.FullScaleTenths())
}

func TestScaleFactor_NoAttenuation(t *testing.T) {
	c := Calibration{RealMaxMV: 24000, MeasuredMaxMV: 24000, FullScale: 1023}

	// Without a divider both formulas agree.
	legacy := c.ScaleFactor()
	c.Formula = FormulaLinear
	assert.InDelta(t, legacy, c.ScaleFactor(), 1e-6)
	assert.InDelta(t, 4.2625, legacy, 1e-5)
}

func TestScaleFactor_Linear(t *testing.T) {
	c := Default()
	c.Formula = FormulaLinear

	assert.InDelta(t, 4.2625, c.ScaleFactor(), 1e-5)
	assert.Equal(t, float32(240), c.FullScaleTenths())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Calibration)
		wantErr error
	}{
		{name: "default", mutate: func(*Calibration) {}},
		{name: "empty formula", mutate: func(c *Calibration) { c.Formula = "" }},
		{name: "zero real max", mutate: func(c *Calibration) { c.RealMaxMV = 0 }, wantErr: ErrRealMax},
		{name: "negative measured max", mutate: func(c *Calibration) { c.MeasuredMaxMV = -1 }, wantErr: ErrMeasuredMax},
		{name: "zero full scale", mutate: func(c *Calibration) { c.FullScale = 0 }, wantErr: ErrFullScale},
		{name: "unknown formula", mutate: func(c *Calibration) { c.Formula = "cubic" }, wantErr: ErrFormula},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
