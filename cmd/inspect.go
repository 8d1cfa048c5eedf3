package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Solteris-Dev/OpenSteamController/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.musicxml | dir>",
	Short: "Parses scores and summarizes their parts",
	Long: `Parses one MusicXML file (or every score under a directory)
and prints parts, measures, note counts and chord sizes, so a
selection can be picked for download.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	info, err := os.Stat(path)
	if err != nil {
		panic("Could not stat " + path + ": " + err.Error())
	}

	paths := []string{path}
	if info.IsDir() {
		paths = util.GatherAllScorePaths(path, 0)
	}

	for _, p := range paths {
		inspectScore(p)
	}
}

func inspectScore(path string) {
	comp, err := loadScore(path)
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return
	}

	fmt.Printf("%v:\n", path)
	fmt.Printf("  tempo: %v bpm, divisions: %v\n", comp.BPM, comp.Divisions)
	fmt.Printf("  parts: %v, measures: %v\n", len(comp.Parts), comp.NumMeasures())

	for i := range comp.Parts {
		part := &comp.Parts[i]
		counts := make([]int, len(part.Measures))
		for j := range part.Measures {
			counts[j] = part.Measures[j].NumNotes()
		}
		chord := comp.LargestChordSize(uint32(i), 0, uint32(len(part.Measures)))
		fmt.Printf("  part %v: %v notes, largest chord %v\n", i, util.Sum(counts), chord)
		fmt.Printf("    notes per measure: %v\n", counts[:util.Min(len(counts), 8)])
	}
}
