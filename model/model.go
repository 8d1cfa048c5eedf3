package model

// Channel identifies one of the controller's two haptic output lines.
type Channel int

const (
	ChannelRight Channel = iota
	ChannelLeft
)

// Channels lists both channels in the order the firmware expects them
// to be programmed.
var Channels = [2]Channel{ChannelRight, ChannelLeft}

func (c Channel) String() string {
	if c == ChannelLeft {
		return "left"
	}
	return "right"
}

// Note is one playable event. Frequencies holds one entry per chord
// member in the order they appeared in the score; a fully parsed Note
// always has at least one. Length is in quarter notes and is shared by
// every chord member.
type Note struct {
	Frequencies []float64
	Length      float64
}

// Measure is one bar of a part. RawDurationSum accumulates the raw
// (pre-divisions) duration of every non-chord note appended, which the
// parser uses for backup bookkeeping. It only ever grows.
type Measure struct {
	Notes          []Note
	RawDurationSum uint32
}

// NumNotes returns how many notes the measure holds. Chord members do
// not add to this count.
func (m *Measure) NumNotes() int {
	return len(m.Notes)
}

// Part is one voice of the score, an ordered list of measures. Measures
// are appended in lock-step across parts so that measure indices line
// up between channels.
type Part struct {
	Measures []Measure
}

// NumNotesInRange sums the note counts over the half-open measure range
// [start, end). Out-of-range indices are clamped to the part.
func (p *Part) NumNotesInRange(start, end uint32) uint32 {
	var n uint32
	for i := start; i < end && i < uint32(len(p.Measures)); i++ {
		n += uint32(len(p.Measures[i].Notes))
	}
	return n
}
