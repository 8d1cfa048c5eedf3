package pitch

import (
	"fmt"

	"github.com/Solteris-Dev/OpenSteamController/model"
)

// C0 in Hz; every other pitch is some number of half steps above it.
// See http://pages.mtu.edu/~suits/NoteFreqCalcs.html
const c0Freq = 16.35

const twelfthRootOfTwo = 1.059463094359

const halfStepsPerOctave = 12

// Half steps from C for each diatonic step letter.
var stepOffsets = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// Frequency converts a MusicXML pitch (step letter, semitone alteration,
// octave) to Hz using equal temperament. The step must be a single
// letter A-G.
func Frequency(step string, alter int, octave int) (float64, error) {
	if len(step) != 1 {
		return 0, fmt.Errorf("%w: step %q", model.ErrInvalidPitch, step)
	}
	offset, ok := stepOffsets[step[0]]
	if !ok {
		return 0, fmt.Errorf("%w: step %q", model.ErrInvalidPitch, step)
	}

	halfSteps := octave*halfStepsPerOctave + alter + offset

	// Repeated multiplication instead of math.Pow keeps the result
	// bit-for-bit stable across platforms.
	factor := 1.0
	for i := 0; i < halfSteps; i++ {
		factor *= twelfthRootOfTwo
	}
	for i := 0; i > halfSteps; i-- {
		factor /= twelfthRootOfTwo
	}

	return c0Freq * factor, nil
}
