// Package score turns a stream of MusicXML structural events into a
// Composition: the full multi-part, multi-measure timeline of notes
// that the download side later lowers into device commands.
package score

import (
	"log/slog"

	"github.com/Solteris-Dev/OpenSteamController/constants"
	"github.com/Solteris-Dev/OpenSteamController/model"
)

// Composition is the parsed timeline. Parts gain measures in lock-step,
// so a measure index is meaningful across every part.
type Composition struct {
	Parts []model.Part

	// Divisions is the number of raw duration units per quarter note,
	// as last declared by the score.
	Divisions uint32

	// BPM is the tempo in quarter notes per minute.
	BPM uint32

	// Part the builder is currently appending notes to.
	currPart int

	// Remaining raw duration per open backup scope, innermost last.
	// prevParts mirrors it with the part index to restore on close;
	// the two always have equal depth.
	backups   []uint32
	prevParts []int
}

// NumMeasures returns the measure count of the first part, which due to
// lock-step appending matches every other part of a well-formed score.
func (c *Composition) NumMeasures() uint32 {
	if len(c.Parts) == 0 {
		return 0
	}
	return uint32(len(c.Parts[0].Measures))
}

// LargestChordSize finds the biggest chord over the half-open measure
// range [measStart, measEnd) of one part. A user may want both channels
// on the same part but picking different chord members, so this bounds
// the usable chord index. Out-of-range arguments log a warning and
// yield 0.
func (c *Composition) LargestChordSize(partIdx, measStart, measEnd uint32) uint32 {
	if partIdx >= uint32(len(c.Parts)) {
		slog.Warn("score: part index out of range", "part", partIdx, "numParts", len(c.Parts))
		return 0
	}
	part := &c.Parts[partIdx]
	numMeas := uint32(len(part.Measures))
	if measStart > numMeas || measEnd > numMeas {
		slog.Warn("score: measure range out of range",
			"start", measStart, "end", measEnd, "numMeasures", numMeas)
		return 0
	}

	var max uint32
	for i := measStart; i < measEnd; i++ {
		for _, note := range part.Measures[i].Notes {
			if uint32(len(note.Frequencies)) > max {
				max = uint32(len(note.Frequencies))
			}
		}
	}
	return max
}

// reset prepares the composition for a fresh parse pass.
func (c *Composition) reset() {
	c.Parts = nil
	c.Divisions = constants.DefaultDivisions
	c.BPM = constants.DefaultBPM
	c.currPart = 0
	c.backups = c.backups[:0]
	c.prevParts = c.prevParts[:0]
}
