package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/dvm/pkg/adc"
)

// inputControl drives the simulated input voltage. It is only enabled while
// a mock source is connected.
type inputControl struct {
	state  *appState
	slider *widget.Slider
	label  *widget.Label
	mock   *adc.Mock
}

// createInputPanel creates the simulated input slider shown under the display.
func createInputPanel(state *appState) *fyne.Container {
	c := &inputControl{
		state: state,
		label: widget.NewLabel(""),
	}

	// Up to 10% over the divider's rated input so clipping can be seen.
	c.slider = widget.NewSlider(0, float64(state.cfg.Calibration.RealMaxMV)*1.1)
	c.slider.Step = 10
	c.slider.SetValue(state.cfg.Mock.InputMV)
	c.slider.OnChanged = c.handleChange
	c.slider.Disable()
	c.updateLabel(state.cfg.Mock.InputMV)

	state.input = c
	return container.NewBorder(nil, nil, widget.NewLabel("Input"), c.label, c.slider)
}

// bind attaches the control to the connected source, or detaches it when
// src is nil or not simulated.
func (c *inputControl) bind(src adc.Source) {
	mock, ok := src.(*adc.Mock)
	if !ok {
		c.mock = nil
		c.slider.Disable()
		return
	}
	c.mock = mock
	c.slider.SetValue(mock.Input())
	c.slider.Enable()
}

// handleChange forwards the slider position to the simulated source.
func (c *inputControl) handleChange(mv float64) {
	c.updateLabel(mv)
	if c.mock == nil {
		return
	}
	if err := c.mock.SetInput(mv); err != nil {
		dialog.ShowError(fmt.Errorf("failed to set input: %w", err), c.state.window)
		return
	}
	c.state.cfg.Mock.InputMV = mv
}

func (c *inputControl) updateLabel(mv float64) {
	c.label.SetText(fmt.Sprintf("%6.2f V", mv/1000))
}
