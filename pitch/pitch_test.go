package pitch

import (
	"errors"
	"testing"

	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/stretchr/testify/assert"
)

func TestA4Is440(t *testing.T) {
	freq, err := Frequency("A", 0, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.InDelta(440.0, freq, 0.5)
}

func TestC0IsBaseFrequency(t *testing.T) {
	freq, err := Frequency("C", 0, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.InDelta(16.35, freq, 0.001)
}

func TestCommonPitches(t *testing.T) {
	cases := []struct {
		step   string
		alter  int
		octave int
		want   float64
	}{
		{"C", 0, 4, 261.63},
		{"E", 0, 4, 329.63},
		{"G", 0, 4, 392.00},
		{"B", 0, 3, 246.94},
		{"F", 1, 4, 369.99}, // F#4
		{"D", -1, 4, 277.18},
		{"A", 0, 0, 27.50},
	}

	assert := assert.New(t)
	for _, c := range cases {
		freq, err := Frequency(c.step, c.alter, c.octave)
		assert.NoError(err)
		assert.InDelta(c.want, freq, 0.5, "step=%v alter=%v octave=%v", c.step, c.alter, c.octave)
	}
}

func TestSharpEqualsNextFlat(t *testing.T) {
	sharp, err1 := Frequency("C", 1, 4)
	flat, err2 := Frequency("D", -1, 4)

	assert := assert.New(t)
	assert.NoError(err1)
	assert.NoError(err2)
	assert.InDelta(sharp, flat, 0.0001)
}

func TestInvalidStepLetter(t *testing.T) {
	_, err := Frequency("H", 0, 4)

	assert := assert.New(t)
	assert.Error(err)
	assert.True(errors.Is(err, model.ErrInvalidPitch))
}

func TestMultiCharStepRejected(t *testing.T) {
	_, err := Frequency("Ab", 0, 4)

	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrInvalidPitch))
}
