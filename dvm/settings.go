package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/config"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSourceTab(state),
		createCalibrationTab(state),
		createTimingTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(520, 380))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(520, 380))
	d.Show()
}

// applySettings validates and saves cfg. A running voltmeter is restarted so
// the new settings take effect; the scale factor is only computed at bootstrap.
func applySettings(state *appState, update func(cfg *config.Config)) {
	next := *state.cfg
	update(&next)
	if err := next.Validate(); err != nil {
		dialog.ShowError(err, state.window)
		return
	}

	*state.cfg = next
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return
	}

	if state.session != nil {
		disconnect(state)
		handleConnect(state)
	}
}

// createSourceTab creates the conversion source tab.
func createSourceTab(state *appState) *container.TabItem {
	kindSelect := widget.NewSelect([]string{config.SourceMock, config.SourceSerial, config.SourceMCP3008}, nil)
	kindSelect.SetSelected(state.cfg.Source.Kind)

	// Get available serial ports
	ports, err := adc.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Source.SamplePeriod.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Source", Widget: kindSelect},
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "Sample Period", Widget: periodEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				cfg.Source.Kind = kindSelect.Selected
				if portSelect.Selected != "" {
					selectedPort := portMap[portSelect.Selected]
					if selectedPort == "" {
						selectedPort = portSelect.Selected
					}
					cfg.Serial.Port = selectedPort
				}
				if baud, err := strconv.Atoi(baudEntry.Text); err == nil {
					cfg.Serial.BaudRate = baud
				}
				if p, err := time.ParseDuration(periodEntry.Text); err == nil {
					cfg.Source.SamplePeriod = p
				}
			})
		},
	}

	return container.NewTabItem("Source", form)
}

// createCalibrationTab creates the divider calibration tab.
func createCalibrationTab(state *appState) *container.TabItem {
	realEntry := widget.NewEntry()
	realEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Calibration.RealMaxMV))

	measuredEntry := widget.NewEntry()
	measuredEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Calibration.MeasuredMaxMV))

	fullEntry := widget.NewEntry()
	fullEntry.SetText(strconv.Itoa(int(state.cfg.Calibration.FullScale)))

	formulaSelect := widget.NewSelect([]string{string(calib.FormulaLegacy), string(calib.FormulaLinear)}, nil)
	formulaSelect.SetSelected(string(state.cfg.Calibration.Formula))

	scaleLabel := widget.NewLabel(describeScale(state.cfg.Calibration))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Real Max (mV)", Widget: realEntry},
			{Text: "Measured Max (mV)", Widget: measuredEntry},
			{Text: "Full Scale Code", Widget: fullEntry},
			{Text: "Formula", Widget: formulaSelect},
			{Text: "Scale", Widget: scaleLabel},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if v, err := strconv.ParseFloat(realEntry.Text, 32); err == nil {
					cfg.Calibration.RealMaxMV = float32(v)
				}
				if v, err := strconv.ParseFloat(measuredEntry.Text, 32); err == nil {
					cfg.Calibration.MeasuredMaxMV = float32(v)
				}
				if v, err := strconv.ParseUint(fullEntry.Text, 10, 16); err == nil {
					cfg.Calibration.FullScale = uint16(v)
				}
				cfg.Calibration.Formula = calib.Formula(formulaSelect.Selected)
			})
			scaleLabel.SetText(describeScale(state.cfg.Calibration))
		},
	}

	return container.NewTabItem("Calibration", form)
}

func describeScale(cal calib.Calibration) string {
	if err := cal.Validate(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%.7f (full scale %.1f V)", cal.ScaleFactor(), float32(cal.FullScaleTenths())/10)
}

// createTimingTab creates the sampler and multiplexer tab.
func createTimingTab(state *appState) *container.TabItem {
	windowEntry := widget.NewEntry()
	windowEntry.SetText(strconv.Itoa(state.cfg.Sampler.Window))

	tickEntry := widget.NewEntry()
	tickEntry.SetText(state.cfg.Display.TickPeriod.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Averaging Window", Widget: windowEntry},
			{Text: "Digit Period", Widget: tickEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if w, err := strconv.Atoi(windowEntry.Text); err == nil {
					cfg.Sampler.Window = w
				}
				if d, err := time.ParseDuration(tickEntry.Text); err == nil {
					cfg.Display.TickPeriod = d
				}
			})
		},
	}

	return container.NewTabItem("Timing", form)
}

// createMockTab creates the simulated source tab.
func createMockTab(state *appState) *container.TabItem {
	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.NoiseMV))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Noise (mV)", Widget: noiseEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if n, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
					cfg.Mock.NoiseMV = n
				}
				if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil {
					cfg.Mock.SampleRate = sr
				}
			})
		},
	}

	return container.NewTabItem("Mock", form)
}
