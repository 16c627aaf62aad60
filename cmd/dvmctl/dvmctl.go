package main

import (
	"fmt"
	"os"

	"github.com/itohio/dvm/pkg/config"
	"github.com/spf13/cobra"
)

var version = "undefined"

var rootCmd = &cobra.Command{
	Use:   "dvmctl",
	Short: "dvmctl is a utility to run and calibrate the digital voltmeter",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "dvmctl %s: %s\n", cmd.Name(), err)
}

// loadConfig loads and validates the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}
	return cfg, nil
}
