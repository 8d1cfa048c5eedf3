package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Solteris-Dev/OpenSteamController/constants"
	"github.com/Solteris-Dev/OpenSteamController/jingle"
	"github.com/Solteris-Dev/OpenSteamController/serial"
)

var (
	device        string
	baud          int
	slot          uint32
	transcriptDir string
)

func init() {
	downloadCmd.Flags().StringVar(&device, "device", "", "serial device of the controller (required)")
	downloadCmd.Flags().IntVar(&baud, "baud", 115200, "baud rate")
	downloadCmd.Flags().Uint32Var(&slot, "slot", 0, "jingle slot to program")
	downloadCmd.Flags().StringVar(&transcriptDir, "transcript-dir", "", "save the command transcript under this directory")
	downloadCmd.MarkFlagRequired("device")
	addSelectionFlags(downloadCmd)
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <score.musicxml>",
	Short: "Programs a jingle onto the controller",
	Long: `Parses the score, checks the selection fits the controller's
EEPROM budget, then programs it into the given jingle slot over
serial. A failed exchange aborts and leaves the slot partially
programmed; rerun to retry the whole slot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return download(args[0])
	},
}

func download(path string) error {
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
	if n > constants.JingleDataMaxBytes {
		return fmt.Errorf("selection needs %d bytes, controller has %d; trim the measure range",
			n, constants.JingleDataMaxBytes)
	}

	port, err := serial.Open(device, baud)
	if err != nil {
		return err
	}
	defer port.Close()

	var transport jingle.Transport = port
	var rec *jingle.Recorder
	if transcriptDir != "" {
		rec = jingle.NewRecorder(port)
		transport = rec
	}

	downloadErr := jingle.Download(transport, comp, cfg, slot)

	if rec != nil {
		// keep the transcript even for an aborted download
		if tpath, err := rec.WriteFile(transcriptDir); err == nil {
			fmt.Printf("Transcript saved to %v\n", tpath)
		} else {
			fmt.Printf("Could not save transcript: %v\n", err)
		}
	}

	if downloadErr != nil {
		return downloadErr
	}
	fmt.Printf("Jingle programmed into slot %v (%v bytes)\n", slot, n)
	return nil
}
