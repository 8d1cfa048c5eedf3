// Package midiexport renders the configured jingle selection to a
// Standard MIDI File so it can be previewed without a controller
// attached. Chords are collapsed to their first member, matching what
// the device would play.
package midiexport

import (
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Solteris-Dev/OpenSteamController/jingle"
	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
)

const ticksPerQuarter = 960

// midiKey maps a frequency in Hz to the nearest MIDI note number,
// clamped to the valid range.
func midiKey(freq float64) uint8 {
	if freq <= 0 {
		return 0
	}
	key := math.Round(69 + 12*math.Log2(freq/440))
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}

// Write renders one track per channel over the configured measure
// range and saves the result at path.
func Write(comp *score.Composition, cfg *jingle.Config, path string) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	start, end := cfg.MeasureRange()
	for i, ch := range model.Channels {
		partIdx := cfg.PartForChannel(ch)
		if partIdx >= uint32(len(comp.Parts)) {
			return fmt.Errorf("%w: part %d for %s channel, score has %d",
				model.ErrBadIndex, partIdx, ch, len(comp.Parts))
		}
		part := &comp.Parts[partIdx]
		if end > uint32(len(part.Measures)) {
			return fmt.Errorf("%w: measure range [%d, %d) exceeds part %d",
				model.ErrBadIndex, start, end, partIdx)
		}

		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(ch.String()))
		tr.Add(0, smf.MetaTempo(float64(comp.BPM)))
		for measIdx := start; measIdx < end; measIdx++ {
			for _, note := range part.Measures[measIdx].Notes {
				var freq float64
				if len(note.Frequencies) > 0 {
					freq = note.Frequencies[0] * cfg.OctaveAdjust
				}
				key := midiKey(freq)
				ticks := uint32(note.Length * ticksPerQuarter)
				tr.Add(0, midi.NoteOn(uint8(i), key, 100))
				tr.Add(ticks, midi.NoteOff(uint8(i), key))
			}
		}
		tr.Close(0)
		s.Add(tr)
	}

	return s.WriteFile(path)
}
