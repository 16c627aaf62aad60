//go:build tinygo && avr

package main

import "github.com/itohio/dvm/pkg/calib"

const (
	// Display lines
	BCD_MASK   = 0x0F // PD0..PD3 feed the 7447 decoder
	DIGIT_BIT0 = 2    // PB2 tenths, PB3 ones, PB4 tens
	DIGIT_MASK = 0x07 << DIGIT_BIT0

	// Converter: AVcc reference, channel ADC0, clk/128 (125kHz at 16MHz,
	// ~9.6k conversions per second, a reading every ~5ms)
	ADC_CHANNEL = 0

	// Multiplexer: Timer2 overflow at clk/64, ~1ms per digit at 16MHz.
	// Timer0 belongs to the TinyGo runtime.
	TIMER_PRESCALER_64 = 0x04
)

// calibration is fixed at build time. Measure the voltage the converter sees
// for a known input and set MeasuredMaxMV accordingly.
var calibration = calib.Calibration{
	RealMaxMV:     24000,
	MeasuredMaxMV: 4898,
	FullScale:     1023,
	Formula:       calib.FormulaLegacy,
}
