package score

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/pitch"
	"github.com/Solteris-Dev/OpenSteamController/xmlevents"
)

// Parse consumes the whole event stream and returns the resulting
// timeline. Any structural error aborts the pass; no partial
// Composition is returned.
func Parse(r xmlevents.Reader) (*Composition, error) {
	var c Composition
	if err := c.Parse(r); err != nil {
		return nil, err
	}
	return &c, nil
}

// Parse rebuilds the composition from a fresh event stream, discarding
// any previously parsed state. Parsing is a single forward pass; it
// cannot be resumed, only rerun with a new reader.
func (c *Composition) Parse(r xmlevents.Reader) error {
	c.reset()

	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}

		switch ev.Kind {
		case xmlevents.EndOfDocument:
			return c.drainBackups("end of document")

		case xmlevents.StartElement:
			switch ev.Name {
			case "note":
				if err := c.parseNote(r); err != nil {
					return err
				}
			case "backup":
				if err := c.parseBackup(r); err != nil {
					return err
				}
			case "measure":
				if err := c.startMeasure(); err != nil {
					return err
				}
			case "per-minute":
				bpm, err := c.readUint(r, "per-minute")
				if err != nil {
					return err
				}
				c.BPM = bpm
			case "divisions":
				div, err := c.readUint(r, "divisions")
				if err != nil {
					return err
				}
				if div == 0 {
					return fmt.Errorf("%w: <divisions> must be positive", model.ErrXMLStructure)
				}
				c.Divisions = div
			}

		case xmlevents.EndElement:
			if ev.Name == "part" {
				// A part boundary closes backups the same way a
				// measure boundary does.
				if err := c.drainBackups("end of part"); err != nil {
					return err
				}
				c.currPart++
			}
		}
	}
}

// startMeasure handles a measure boundary: every backup seen in the
// previous measure must be fully consumed, then all parts at or below
// the cursor gain a fresh measure so their measure counts stay equal.
func (c *Composition) startMeasure() error {
	if err := c.drainBackups("start of measure"); err != nil {
		return err
	}
	for i := c.currPart; i < len(c.Parts); i++ {
		c.Parts[i].Measures = append(c.Parts[i].Measures, model.Measure{})
	}
	return nil
}

// drainBackups pops every open backup scope, restoring the part cursor
// at each pop. A scope with duration still unconsumed is a structural
// error.
func (c *Composition) drainBackups(where string) error {
	for len(c.backups) > 0 {
		if top := c.backups[len(c.backups)-1]; top != 0 {
			return fmt.Errorf("%w: %d raw units remaining at %s",
				model.ErrUnresolvedBackup, top, where)
		}
		c.popBackup()
	}
	return nil
}

// popBackup closes the innermost backup scope. The two stacks always
// move together.
func (c *Composition) popBackup() {
	c.backups = c.backups[:len(c.backups)-1]
	c.currPart = c.prevParts[len(c.prevParts)-1]
	c.prevParts = c.prevParts[:len(c.prevParts)-1]
}

// parseBackup consumes a <backup> element. It pushes the rewind
// duration and the current part, then points the cursor at the next
// part; notes that follow belong to that part until the scope closes.
func (c *Composition) parseBackup(r xmlevents.Reader) error {
	var duration uint32

	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		switch {
		case ev.Kind == xmlevents.EndElement && ev.Name == "backup":
			if duration == 0 {
				return fmt.Errorf("%w: <backup> must rewind by a positive duration", model.ErrZeroBackup)
			}
			c.backups = append(c.backups, duration)
			c.prevParts = append(c.prevParts, c.currPart)
			c.currPart++
			return nil

		case ev.Kind == xmlevents.StartElement && ev.Name == "duration":
			duration, err = c.readUint(r, "duration")
			if err != nil {
				return err
			}

		case ev.Kind == xmlevents.EndOfDocument:
			return fmt.Errorf("%w: document ended inside <backup>", model.ErrXMLStructure)
		}
	}
}

// parseNote consumes a <note> element and appends the result to the
// current measure of the current part.
func (c *Composition) parseNote(r xmlevents.Reader) error {
	// A backup scope whose counter already hit zero closes exactly at
	// the next note.
	if n := len(c.backups); n > 0 && c.backups[n-1] == 0 {
		c.popBackup()
	}

	var (
		rawDuration uint32
		length      float64
		frequency   float64
		isChord     bool
	)

	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		switch {
		case ev.Kind == xmlevents.EndElement && ev.Name == "note":
			return c.appendNote(frequency, length, rawDuration, isChord)

		case ev.Kind == xmlevents.StartElement:
			switch ev.Name {
			case "pitch":
				frequency, err = c.parsePitch(r)
				if err != nil {
					return err
				}
			case "duration":
				rawDuration, err = c.readUint(r, "duration")
				if err != nil {
					return err
				}
				length = float64(rawDuration) / float64(c.Divisions)
			case "chord":
				isChord = true
			}

		case ev.Kind == xmlevents.EndOfDocument:
			return fmt.Errorf("%w: document ended inside <note>", model.ErrXMLStructure)
		}
	}
}

func (c *Composition) appendNote(frequency, length float64, rawDuration uint32, isChord bool) error {
	for c.currPart >= len(c.Parts) {
		c.Parts = append(c.Parts, model.Part{})
	}
	part := &c.Parts[c.currPart]

	if len(part.Measures) == 0 {
		part.Measures = append(part.Measures, model.Measure{})
	}
	meas := &part.Measures[len(part.Measures)-1]

	if isChord {
		if len(meas.Notes) == 0 {
			return fmt.Errorf("%w: chord marker in part %d", model.ErrChordWithoutNote, c.currPart)
		}
		note := &meas.Notes[len(meas.Notes)-1]
		// Scores in the wild have small length jitter between chord
		// members; the base note's length wins.
		if int(note.Length) != int(length) {
			slog.Warn("score: chord member length differs from base note",
				"base", note.Length, "member", length)
		}
		note.Frequencies = append(note.Frequencies, frequency)
		return nil
	}

	meas.Notes = append(meas.Notes, model.Note{
		Frequencies: []float64{frequency},
		Length:      length,
	})
	meas.RawDurationSum += rawDuration

	if n := len(c.backups); n > 0 {
		remaining := c.backups[n-1]
		if rawDuration > remaining {
			return fmt.Errorf("%w: note of %d raw units, %d remaining",
				model.ErrBackupUnderflow, rawDuration, remaining)
		}
		c.backups[n-1] = remaining - rawDuration
	}
	return nil
}

// parsePitch consumes a <pitch> element and resolves it to Hz.
func (c *Composition) parsePitch(r xmlevents.Reader) (float64, error) {
	var (
		step   string
		alter  int
		octave int
	)

	for {
		ev, err := r.Next()
		if err != nil {
			return 0, err
		}
		switch {
		case ev.Kind == xmlevents.EndElement && ev.Name == "pitch":
			return pitch.Frequency(step, alter, octave)

		case ev.Kind == xmlevents.StartElement:
			switch ev.Name {
			case "step":
				step, err = c.readText(r, "step")
			case "alter":
				alter, err = c.readInt(r, "alter")
			case "octave":
				octave, err = c.readInt(r, "octave")
			}
			if err != nil {
				return 0, err
			}

		case ev.Kind == xmlevents.EndOfDocument:
			return 0, fmt.Errorf("%w: document ended inside <pitch>", model.ErrXMLStructure)
		}
	}
}

// readText consumes the text content and close tag of a leaf element
// the reader just entered.
func (c *Composition) readText(r xmlevents.Reader, name string) (string, error) {
	ev, err := r.Next()
	if err != nil {
		return "", err
	}
	if ev.Kind != xmlevents.CharData {
		return "", fmt.Errorf("%w: expected text inside <%s>", model.ErrXMLStructure, name)
	}
	text := ev.Text

	ev, err = r.Next()
	if err != nil {
		return "", err
	}
	if ev.Kind != xmlevents.EndElement || ev.Name != name {
		return "", fmt.Errorf("%w: <%s> not closed", model.ErrXMLStructure, name)
	}
	return text, nil
}

func (c *Composition) readUint(r xmlevents.Reader, name string) (uint32, error) {
	text, err := c.readText(r, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad <%s> value %q", model.ErrXMLStructure, name, text)
	}
	return uint32(v), nil
}

func (c *Composition) readInt(r xmlevents.Reader, name string) (int, error) {
	text, err := c.readText(r, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: bad <%s> value %q", model.ErrXMLStructure, name, text)
	}
	return v, nil
}
