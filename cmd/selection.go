package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Solteris-Dev/OpenSteamController/jingle"
	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
	"github.com/Solteris-Dev/OpenSteamController/xmlevents"
)

var (
	configPath   string
	rightPart    uint32
	leftPart     uint32
	measStart    uint32
	measEnd      uint32
	octaveAdjust float64
)

// addSelectionFlags registers the channel/range selection flags shared
// by every command that exports jingle data.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "yaml selection file; overrides the other selection flags")
	cmd.Flags().Uint32Var(&rightPart, "right-part", 0, "part index feeding the right channel")
	cmd.Flags().Uint32Var(&leftPart, "left-part", 0, "part index feeding the left channel")
	cmd.Flags().Uint32Var(&measStart, "start", 0, "first measure to export")
	cmd.Flags().Uint32Var(&measEnd, "end", 0, "measure to stop before; 0 means the whole score")
	cmd.Flags().Float64Var(&octaveAdjust, "octave-adjust", 1.0, "frequency multiplier (2 = up an octave)")
}

// loadScore parses one MusicXML file into a Composition.
func loadScore(path string) (*score.Composition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return score.Parse(xmlevents.NewDecoder(f))
}

// buildConfig turns the selection flags (or the yaml file, if given)
// into a validated Config.
func buildConfig(comp *score.Composition) (*jingle.Config, error) {
	if configPath != "" {
		return jingle.LoadConfig(configPath, comp)
	}

	cfg := jingle.NewConfig()
	if err := cfg.SetPartForChannel(comp, model.ChannelRight, rightPart); err != nil {
		return nil, err
	}
	if err := cfg.SetPartForChannel(comp, model.ChannelLeft, leftPart); err != nil {
		return nil, err
	}
	end := measEnd
	if end == 0 {
		end = comp.NumMeasures()
	}
	if err := cfg.SetMeasureRange(comp, measStart, end); err != nil {
		return nil, err
	}
	cfg.OctaveAdjust = octaveAdjust
	return cfg, nil
}
