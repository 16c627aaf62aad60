//go:build tinygo && avr

package main

import (
	"context"
	"device/avr"
	"runtime/interrupt"

	"github.com/itohio/dvm/pkg/platform"
)

var _ platform.Platform = (*board)(nil)

var (
	onConversion platform.ConversionHandler
	onTick       platform.TickHandler
)

// board is the ATmega328P: the converter runs free and interrupts on every
// conversion, Timer2 interrupts on overflow.
type board struct{}

func (board) Disable() platform.State {
	return platform.State(interrupt.Disable())
}

func (board) Restore(s platform.State) {
	interrupt.Restore(interrupt.State(s))
}

func (board) WriteBCD(digit uint8) {
	avr.PORTD.Set(avr.PORTD.Get()&^BCD_MASK | digit&BCD_MASK)
}

func (board) Blank() {
	avr.PORTB.ClearBits(DIGIT_MASK)
}

func (board) Select(pos int) {
	if pos < 0 || pos >= platform.Positions {
		return
	}
	avr.PORTB.SetBits(1 << (DIGIT_BIT0 + uint8(pos)))
}

func (board) OnConversion(h platform.ConversionHandler) { onConversion = h }
func (board) OnTick(h platform.TickHandler)             { onTick = h }

// Arm configures the display lines, the timer and the converter, then
// enables their interrupts.
func (board) Arm(context.Context) error {
	avr.DDRD.SetBits(BCD_MASK)
	avr.DDRB.SetBits(DIGIT_MASK)

	interrupt.New(avr.IRQ_TIMER2_OVF, handleTimer).Enable()
	interrupt.New(avr.IRQ_ADC, handleADC).Enable()

	avr.TCCR2A.Set(0)
	avr.TCCR2B.Set(TIMER_PRESCALER_64)
	avr.TIMSK2.SetBits(avr.TIMSK2_TOIE2)

	avr.ADMUX.Set(avr.ADMUX_REFS0 | ADC_CHANNEL)
	avr.ADCSRB.Set(0) // free running
	avr.ADCSRA.Set(avr.ADCSRA_ADEN | avr.ADCSRA_ADATE | avr.ADCSRA_ADIE |
		avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS1 | avr.ADCSRA_ADPS0)
	avr.ADCSRA.SetBits(avr.ADCSRA_ADSC)

	return nil
}

func handleADC(interrupt.Interrupt) {
	// ADCL must be read first, it latches ADCH.
	lo := avr.ADCL.Get()
	hi := avr.ADCH.Get()
	if onConversion != nil {
		onConversion(uint16(hi)<<8 | uint16(lo))
	}
}

func handleTimer(interrupt.Interrupt) {
	if onTick != nil {
		onTick()
	}
}
