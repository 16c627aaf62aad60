package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/board"
	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/itohio/dvm/pkg/segment"
	"github.com/itohio/dvm/pkg/voltmeter"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use the simulated input instead of the configured source")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
		cfg.Source.Kind = config.SourceSerial
	}
	if *mockFlag {
		cfg.Source.Kind = config.SourceMock
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	application := app.NewWithID("com.itohio.dvm")

	window := application.NewWindow("Digital Voltmeter")
	window.Resize(fyne.NewSize(480, 260))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		display:    segment.New(),
	}

	toolbar := createToolbar(state)
	state.inputPanel = createInputPanel(state)

	window.SetContent(container.NewBorder(
		toolbar,
		state.inputPanel,
		nil,
		nil,
		state.display,
	))
	window.SetOnClosed(func() {
		disconnect(state)
	})
	window.ShowAndRun()
}

// session is one armed voltmeter. It is torn down on disconnect.
type session struct {
	source adc.Source
	board  *board.Board
	meter  *voltmeter.Voltmeter
	cancel context.CancelFunc
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	display    *segment.Display
	connectBtn *widget.Button
	reading    *widget.Label
	inputPanel *fyne.Container
	input      *inputControl
	session    *session
	refresh    *throttle
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	state.reading = widget.NewLabel("--.- V")

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(connectBtn, settingsBtn),
		state.reading,
		nil,
	)
}

// handleConnect toggles between a running voltmeter and a dark display.
func handleConnect(state *appState) {
	if state.session != nil {
		disconnect(state)
		return
	}

	s, err := connect(state)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.session = s
	state.connectBtn.SetIcon(theme.LogoutIcon())
	state.input.bind(s.source)
	log.Printf("Connected to %s source", state.cfg.Source.Kind)

	// The board stops by itself when the source runs dry.
	go func() {
		<-s.board.Done()
		UpdateWidgetOnMainThread(func() {
			if state.session == s {
				disconnect(state)
			}
		})
	}()
}

// connect bootstraps a voltmeter on a hosted board whose output lines feed
// the segment display.
func connect(state *appState) (*session, error) {
	src, err := board.NewSource(state.cfg)
	if err != nil {
		return nil, err
	}

	lines := platform.NewLines()
	state.refresh = newThrottle(refreshInterval, func() {
		state.display.Refresh()
	})
	lines.OnChange(func(s platform.Snapshot) {
		state.display.Latch(s)
		state.refresh.Trigger()
	})

	b := board.New(src, lines, state.cfg.Display.TickPeriod)
	vm, err := voltmeter.New(b, state.cfg.Calibration, state.cfg.Sampler.Window)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := vm.Start(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s source: %w", state.cfg.Source.Kind, err)
	}

	go pollReading(ctx, state, vm)

	return &session{
		source: src,
		board:  b,
		meter:  vm,
		cancel: cancel,
	}, nil
}

// disconnect stops the running voltmeter and darkens the display.
func disconnect(state *appState) {
	s := state.session
	if s == nil {
		return
	}
	state.session = nil

	s.cancel()
	s.board.Close()

	state.display.Clear()
	state.display.Refresh()
	state.reading.SetText("--.- V")
	state.connectBtn.SetIcon(theme.LoginIcon())
	state.input.bind(nil)
	log.Printf("Disconnected from %s source", state.cfg.Source.Kind)
}
