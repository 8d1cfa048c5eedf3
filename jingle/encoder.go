package jingle

import (
	"fmt"
	"log/slog"

	"github.com/Solteris-Dev/OpenSteamController/constants"
	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
)

// Transport is the blocking send-with-expected-response primitive the
// downloader drives. Send must not return until the device either
// echoed the expected response or failed; an error means the response
// deviated or the link broke.
type Transport interface {
	Send(cmd, expected string) error
}

// addCmd renders the slot allocation command. The firmware wants the
// note count for each channel.
func addCmd(numNotes uint32) string {
	return fmt.Sprintf("jingle add %d %d\n", numNotes, numNotes)
}

// noteCmd renders one note-programming command. chordIdx picks which
// chord member to play; a member beyond the note's chord logs a warning
// and programs silence, matching what the firmware would do with a
// zero frequency.
func noteCmd(note *model.Note, ch model.Channel, jingleIdx, noteIdx, chordIdx uint32,
	bpm uint32, octaveAdjust float64) string {

	var frequency uint32
	if chordIdx < uint32(len(note.Frequencies)) {
		frequency = uint32(note.Frequencies[chordIdx] * octaveAdjust)
	} else {
		slog.Warn("jingle: chord index out of range, programming silence",
			"chordIdx", chordIdx, "chordSize", len(note.Frequencies))
	}

	durationMs := uint32(note.Length * 60 * 1000 / float64(bpm))

	return fmt.Sprintf("jingle note %d %s %d %d %d %d\n",
		jingleIdx, ch, noteIdx, constants.NoteDutyCycle, frequency, durationMs)
}

// sendChecked issues one command and validates the exact echo-plus-
// confirmation response.
func sendChecked(t Transport, cmd, confirmation string) error {
	expected := cmd + "\r" + confirmation + "\n\r"
	if err := t.Send(cmd, expected); err != nil {
		return fmt.Errorf("%w: %v", model.ErrProtocol, err)
	}
	return nil
}

// Download programs the configured selection into the given jingle slot
// on the device. It allocates the slot, then walks the measure range
// programming each note on the right channel then the left. The first
// failed exchange aborts the whole download and leaves the slot
// partially programmed; retries must redo the entire slot.
//
// Command output is a pure function of the composition and config, so
// two runs against the same inputs produce identical byte sequences.
func Download(t Transport, comp *score.Composition, cfg *Config, jingleIdx uint32) error {
	start, end := cfg.MeasureRange()

	// The config may predate a re-parse; check everything again.
	rightIdx := cfg.PartForChannel(model.ChannelRight)
	leftIdx := cfg.PartForChannel(model.ChannelLeft)
	for _, partIdx := range []uint32{rightIdx, leftIdx} {
		if partIdx >= uint32(len(comp.Parts)) {
			return fmt.Errorf("%w: part %d, score has %d parts",
				model.ErrBadIndex, partIdx, len(comp.Parts))
		}
	}
	right := &comp.Parts[rightIdx]
	left := &comp.Parts[leftIdx]
	if end > uint32(len(right.Measures)) || end > uint32(len(left.Measures)) {
		return fmt.Errorf("%w: measure range [%d, %d) exceeds selected parts",
			model.ErrBadIndex, start, end)
	}

	// The allocate command carries a single per-channel note count, so
	// both selected parts must agree on it, measure by measure.
	numNotes := right.NumNotesInRange(start, end)
	if n := left.NumNotesInRange(start, end); n != numNotes {
		return fmt.Errorf("%w: right part has %d notes, left has %d",
			model.ErrChannelMismatch, numNotes, n)
	}

	if err := sendChecked(t, addCmd(numNotes), "Jingle added successfully."); err != nil {
		return err
	}

	var noteIdx uint32
	for measIdx := start; measIdx < end; measIdx++ {
		rightMeas := &right.Measures[measIdx]
		leftMeas := &left.Measures[measIdx]
		if len(rightMeas.Notes) != len(leftMeas.Notes) {
			return fmt.Errorf("%w: measure %d has %d right notes, %d left",
				model.ErrChannelMismatch, measIdx, len(rightMeas.Notes), len(leftMeas.Notes))
		}

		for i := range rightMeas.Notes {
			cmd := noteCmd(&rightMeas.Notes[i], model.ChannelRight, jingleIdx, noteIdx, 0,
				comp.BPM, cfg.OctaveAdjust)
			if err := sendChecked(t, cmd, "Note updated successfully."); err != nil {
				return err
			}
			cmd = noteCmd(&leftMeas.Notes[i], model.ChannelLeft, jingleIdx, noteIdx, 0,
				comp.BPM, cfg.OctaveAdjust)
			if err := sendChecked(t, cmd, "Note updated successfully."); err != nil {
				return err
			}
			noteIdx++
		}
	}

	return nil
}
