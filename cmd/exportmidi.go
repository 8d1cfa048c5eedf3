package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Solteris-Dev/OpenSteamController/midiexport"
)

var midiOut string

func init() {
	exportMidiCmd.Flags().StringVar(&midiOut, "out", "", "output .mid path; defaults next to the score")
	addSelectionFlags(exportMidiCmd)
	rootCmd.AddCommand(exportMidiCmd)
}

var exportMidiCmd = &cobra.Command{
	Use:   "exportmidi <score.musicxml>",
	Short: "Renders the selection to a MIDI file",
	Long: `Renders the configured selection to a Standard MIDI File, one
track per channel, for previewing a jingle without a controller.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportMidi(args[0])
	},
}

func exportMidi(path string) error {
	comp, err := loadScore(path)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(comp)
	if err != nil {
		return err
	}

	out := midiOut
	if out == "" {
		out = strings.TrimSuffix(strings.TrimSuffix(path, ".musicxml"), ".xml") + ".mid"
	}
	if err := midiexport.Write(comp, cfg, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %v\n", out)
	return nil
}
