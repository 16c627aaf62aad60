package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/itohio/dvm/pkg/board"
	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/itohio/dvm/pkg/voltmeter"
	"github.com/spf13/cobra"
)

func init() {
	runCmd.Flags().StringVarP(&runOpts.Source, "source", "s", "", "conversion source: mock, serial or mcp3008")
	runCmd.Flags().StringVarP(&runOpts.Port, "port", "p", "", "serial port (implies --source serial)")
	runCmd.Flags().Float64VarP(&runOpts.InputMV, "input", "i", -1, "simulated input in mV (mock source)")
	runCmd.Flags().IntVarP(&runOpts.Window, "window", "w", 0, "samples averaged per reading")
	runCmd.Flags().BoolVarP(&runOpts.GPIO, "gpio", "g", false, "drive the display from the configured gpio pins")
	runCmd.Flags().DurationVarP(&runOpts.Duration, "duration", "d", 0, "stop after duration")
	runCmd.Flags().DurationVar(&runOpts.Poll, "poll", 100*time.Millisecond, "reading poll period")
	runCmd.SetHelpTemplate(runCmd.HelpTemplate() + extendedRunHelp)
	rootCmd.AddCommand(runCmd)
}

var extendedRunHelp = `
The reading is printed in volts every time it changes.
Interrupt to stop.
`

var (
	runCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run the voltmeter headless",
		Example: "  dvmctl run --source mock --input 12000 -d 2s",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	runOpts = struct {
		Source   string
		Port     string
		InputMV  float64
		Window   int
		GPIO     bool
		Duration time.Duration
		Poll     time.Duration
	}{}
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyRunOpts(cfg); err != nil {
		return err
	}

	src, err := board.NewSource(cfg)
	if err != nil {
		return err
	}

	var out platform.Outputs = platform.NewLines()
	if runOpts.GPIO {
		lines, release, err := board.NewGPIOOutputs(cfg.GPIO)
		if err != nil {
			return err
		}
		defer release()
		out = lines
	}

	b := board.New(src, out, cfg.Display.TickPeriod)
	vm, err := voltmeter.New(b, cfg.Calibration, cfg.Sampler.Window)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if runOpts.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, runOpts.Duration)
		defer cancel()
	}

	if err := vm.Start(ctx); err != nil {
		return err
	}
	defer b.Close()
	log.Printf("scale %.7f, %s source", vm.Scale(), cfg.Source.Kind)

	printReadings(ctx, b.Done(), vm, runOpts.Poll)
	return nil
}

// applyRunOpts overrides cfg with the flags given on the command line.
func applyRunOpts(cfg *config.Config) error {
	if runOpts.Port != "" {
		cfg.Serial.Port = runOpts.Port
		cfg.Source.Kind = config.SourceSerial
	}
	if runOpts.Source != "" {
		cfg.Source.Kind = runOpts.Source
	}
	if runOpts.InputMV >= 0 {
		cfg.Mock.InputMV = runOpts.InputMV
	}
	if runOpts.Window != 0 {
		cfg.Sampler.Window = runOpts.Window
	}
	if runOpts.Poll <= 0 {
		return fmt.Errorf("invalid poll period %v", runOpts.Poll)
	}
	return cfg.Validate()
}

// printReadings prints the reading whenever it changes until ctx is done or
// the board stops.
func printReadings(ctx context.Context, done <-chan struct{}, vm *voltmeter.Voltmeter, poll time.Duration) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			r := int(vm.Reading())
			if r == last {
				continue
			}
			last = r
			fmt.Printf("%5.1f V\n", vm.Volts())
		}
	}
}
