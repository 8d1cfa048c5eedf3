// Package jingle holds everything device-facing: the channel/range
// configuration, the EEPROM capacity estimate, and the command encoder
// that programs a jingle slot over a transport.
package jingle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
)

// Config selects which part feeds each channel and which measure range
// gets exported. Setters validate against a Composition and leave the
// previous value untouched on rejection. The Composition is not locked
// to the Config; if it is re-parsed, re-validate before downloading.
type Config struct {
	partIdx   [2]uint32 // indexed by model.Channel
	measStart uint32
	measEnd   uint32 // exclusive

	// OctaveAdjust multiplies every output frequency, letting a jingle
	// be shifted into the controller's audible range (2.0 = up an
	// octave, 0.5 = down).
	OctaveAdjust float64
}

func NewConfig() *Config {
	return &Config{OctaveAdjust: 1.0}
}

// SetPartForChannel points a channel at a part of the composition.
func (c *Config) SetPartForChannel(comp *score.Composition, ch model.Channel, partIdx uint32) error {
	if partIdx >= uint32(len(comp.Parts)) {
		return fmt.Errorf("%w: part %d for %s channel, score has %d",
			model.ErrBadIndex, partIdx, ch, len(comp.Parts))
	}
	c.partIdx[ch] = partIdx
	return nil
}

// PartForChannel returns the part index the channel pulls notes from.
func (c *Config) PartForChannel(ch model.Channel) uint32 {
	return c.partIdx[ch]
}

// SetMeasureRange sets the half-open [start, end) measure range shared
// by both channels, validated against the first part's measure count.
// start >= end is allowed and exports nothing.
func (c *Config) SetMeasureRange(comp *score.Composition, start, end uint32) error {
	numMeas := comp.NumMeasures()
	if start >= numMeas {
		return fmt.Errorf("%w: measure start %d, score has %d measures",
			model.ErrBadIndex, start, numMeas)
	}
	if end > numMeas {
		return fmt.Errorf("%w: measure end %d, score has %d measures",
			model.ErrBadIndex, end, numMeas)
	}
	c.measStart = start
	c.measEnd = end
	return nil
}

// MeasureRange returns the configured half-open measure range.
func (c *Config) MeasureRange() (start, end uint32) {
	return c.measStart, c.measEnd
}

// SelectAll configures both channels onto the first part over every
// measure, the default after a successful parse.
func (c *Config) SelectAll(comp *score.Composition) error {
	if len(comp.Parts) == 0 {
		return fmt.Errorf("%w: score has no parts", model.ErrBadIndex)
	}
	for _, ch := range model.Channels {
		if err := c.SetPartForChannel(comp, ch, 0); err != nil {
			return err
		}
	}
	return c.SetMeasureRange(comp, 0, comp.NumMeasures())
}

// configFile is the on-disk yaml shape.
type configFile struct {
	RightPart    uint32  `yaml:"right_part"`
	LeftPart     uint32  `yaml:"left_part"`
	MeasureStart uint32  `yaml:"measure_start"`
	MeasureEnd   uint32  `yaml:"measure_end"`
	OctaveAdjust float64 `yaml:"octave_adjust"`
}

// LoadConfig reads a yaml selection file and validates it against the
// composition through the regular setters.
func LoadConfig(path string, comp *score.Composition) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	c := NewConfig()
	if f.OctaveAdjust != 0 {
		c.OctaveAdjust = f.OctaveAdjust
	}
	if err := c.SetPartForChannel(comp, model.ChannelRight, f.RightPart); err != nil {
		return nil, err
	}
	if err := c.SetPartForChannel(comp, model.ChannelLeft, f.LeftPart); err != nil {
		return nil, err
	}
	if err := c.SetMeasureRange(comp, f.MeasureStart, f.MeasureEnd); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the selection as yaml.
func (c *Config) Save(path string) error {
	f := configFile{
		RightPart:    c.partIdx[model.ChannelRight],
		LeftPart:     c.partIdx[model.ChannelLeft],
		MeasureStart: c.measStart,
		MeasureEnd:   c.measEnd,
		OctaveAdjust: c.OctaveAdjust,
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}
