package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Solteris-Dev/OpenSteamController/constants"
	"github.com/Solteris-Dev/OpenSteamController/jingle"
)

func init() {
	addSelectionFlags(estimateCmd)
	rootCmd.AddCommand(estimateCmd)
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <score.musicxml>",
	Short: "Estimates EEPROM usage for a selection",
	Long: `Computes how many bytes of controller EEPROM the configured
selection would occupy, without touching the device.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return estimate(args[0])
	},
}

func estimate(path string) error {
	comp, err := loadScore(path)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(comp)
	if err != nil {
		return err
	}

	n, err := jingle.EstimateBytes(comp, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%v bytes of %v available\n", n, constants.JingleDataMaxBytes)
	if n > constants.JingleDataMaxBytes {
		fmt.Println("Selection is over budget; trim the measure range.")
	}
	return nil
}
