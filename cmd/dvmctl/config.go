package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/itohio/dvm/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.Flags().BoolVarP(&configOpts.Force, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(configCmd)
}

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE:  writeConfig,
	}
	configOpts = struct {
		Force bool
	}{}
)

func writeConfig(cmd *cobra.Command, args []string) error {
	if !configOpts.Force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s exists, use --force to overwrite", configPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := config.Default().Save(configPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configPath)
	return nil
}
