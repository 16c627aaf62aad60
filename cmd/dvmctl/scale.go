package main

import (
	"fmt"

	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/sample"
	"github.com/spf13/cobra"
)

func init() {
	scaleCmd.Flags().Float32VarP(&scaleOpts.RealMaxMV, "real", "r", 0, "real full-scale input in mV")
	scaleCmd.Flags().Float32VarP(&scaleOpts.MeasuredMaxMV, "measured", "m", 0, "voltage measured at the converter for the real input in mV")
	scaleCmd.Flags().Uint16VarP(&scaleOpts.FullScale, "full", "f", 0, "full-scale converter code")
	scaleCmd.Flags().StringVar(&scaleOpts.Formula, "formula", "", "scale formula: legacy or linear")
	rootCmd.AddCommand(scaleCmd)
}

var (
	scaleCmd = &cobra.Command{
		Use:     "scale [code]...",
		Short:   "Print the scale factor and the reading for raw codes",
		Example: "  dvmctl scale --real 24000 --measured 4898 512 1023",
		RunE:    scale,
	}
	scaleOpts = struct {
		RealMaxMV     float32
		MeasuredMaxMV float32
		FullScale     uint16
		Formula       string
	}{}
)

func scale(cmd *cobra.Command, args []string) error {
	cal := calib.Default()
	if cfg, err := loadConfig(); err == nil {
		cal = cfg.Calibration
	} else {
		logErr(cmd, err)
	}
	if scaleOpts.RealMaxMV != 0 {
		cal.RealMaxMV = scaleOpts.RealMaxMV
	}
	if scaleOpts.MeasuredMaxMV != 0 {
		cal.MeasuredMaxMV = scaleOpts.MeasuredMaxMV
	}
	if scaleOpts.FullScale != 0 {
		cal.FullScale = scaleOpts.FullScale
	}
	if scaleOpts.Formula != "" {
		cal.Formula = calib.Formula(scaleOpts.Formula)
	}
	if err := cal.Validate(); err != nil {
		return err
	}

	codes, err := parseCodes(args)
	if err != nil {
		return err
	}

	s := cal.ScaleFactor()
	fmt.Printf("formula:    %s\n", cal.Formula)
	fmt.Printf("scale:      %.7f\n", s)
	fmt.Printf("full scale: %5.1f V\n", cal.FullScaleTenths()/10)
	for _, c := range codes {
		v := sample.Convert(uint32(c), s)
		fmt.Printf("code %4d:  %5.1f V\n", c, sample.Tenths(v))
	}
	return nil
}

func parseCodes(args []string) ([]uint16, error) {
	cc := []uint16(nil)
	for _, arg := range args {
		var c uint16
		if _, err := fmt.Sscan(arg, &c); err != nil {
			return nil, fmt.Errorf("can't parse code '%s'", arg)
		}
		cc = append(cc, c)
	}
	return cc, nil
}
