package main

import (
	"fmt"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports an ADC bridge may be attached to",
	Args:  cobra.NoArgs,
	RunE:  ports,
}

func ports(cmd *cobra.Command, args []string) error {
	pp, err := adc.Ports()
	if err != nil {
		return err
	}
	if len(pp) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range pp {
		if p.Description != "" && p.Description != p.Name {
			fmt.Printf("%s\t%s\n", p.Name, p.Description)
			continue
		}
		fmt.Println(p.Name)
	}
	return nil
}
