package e2e_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Solteris-Dev/OpenSteamController/jingle"
	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
	"github.com/Solteris-Dev/OpenSteamController/xmlevents"
	"github.com/stretchr/testify/assert"
)

// twoVoiceScore is a small but representative MusicXML document: two
// measures, a chord, and a backup per measure carrying a second voice.
const twoVoiceScore = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="3.1">
  <part id="P1">
    <measure number="1">
      <attributes><divisions>2</divisions></attributes>
      <direction>
        <direction-type>
          <metronome><beat-unit>quarter</beat-unit><per-minute>120</per-minute></metronome>
        </direction-type>
      </direction>
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>2</duration></note>
      <note><chord/><pitch><step>E</step><octave>4</octave></pitch><duration>2</duration></note>
      <note><pitch><step>G</step><octave>4</octave></pitch><duration>2</duration></note>
      <backup><duration>4</duration></backup>
      <note><pitch><step>C</step><octave>3</octave></pitch><duration>4</duration></note>
    </measure>
    <measure number="2">
      <note><pitch><step>A</step><octave>4</octave></pitch><duration>4</duration></note>
      <backup><duration>4</duration></backup>
      <note><pitch><step>A</step><octave>3</octave></pitch><duration>4</duration></note>
    </measure>
  </part>
</score-partwise>
`

type fakeTransport struct {
	sent   []string
	failAt int
}

func (f *fakeTransport) Send(cmd, expected string) error {
	f.sent = append(f.sent, cmd)
	if f.failAt != 0 && len(f.sent) == f.failAt {
		return errors.New("response mismatch")
	}
	return nil
}

func parseTwoVoiceScore(t *testing.T) *score.Composition {
	t.Helper()
	comp, err := score.Parse(xmlevents.NewDecoder(strings.NewReader(twoVoiceScore)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return comp
}

func TestParseTwoVoiceScore(t *testing.T) {
	comp := parseTwoVoiceScore(t)

	assert := assert.New(t)
	assert.Equal(uint32(120), comp.BPM)
	assert.Equal(uint32(2), comp.Divisions)
	assert.Len(comp.Parts, 2)
	assert.Equal(uint32(2), comp.NumMeasures())

	// voice one: chord of two plus a second note, then one note
	assert.Len(comp.Parts[0].Measures[0].Notes, 2)
	assert.Len(comp.Parts[0].Measures[0].Notes[0].Frequencies, 2)
	assert.Len(comp.Parts[0].Measures[1].Notes, 1)

	// voice two: one long note per measure
	assert.Len(comp.Parts[1].Measures[0].Notes, 1)
	assert.Len(comp.Parts[1].Measures[1].Notes, 1)

	assert.Equal(uint32(2), comp.LargestChordSize(0, 0, 2))
	assert.Equal(uint32(1), comp.LargestChordSize(1, 0, 2))
}

func TestDownloadWholeScore(t *testing.T) {
	comp := parseTwoVoiceScore(t)

	cfg := jingle.NewConfig()
	tr := &fakeTransport{}

	assert := assert.New(t)
	assert.NoError(cfg.SelectAll(comp))
	assert.NoError(jingle.Download(tr, comp, cfg, 0))
	assert.Equal([]string{
		"jingle add 3 3\n",
		"jingle note 0 right 0 128 261 500\n",
		"jingle note 0 left 0 128 261 500\n",
		"jingle note 0 right 1 128 391 500\n",
		"jingle note 0 left 1 128 391 500\n",
		"jingle note 0 right 2 128 439 1000\n",
		"jingle note 0 left 2 128 439 1000\n",
	}, tr.sent)
}

func TestDownloadAbortsMidSlot(t *testing.T) {
	comp := parseTwoVoiceScore(t)

	cfg := jingle.NewConfig()
	tr := &fakeTransport{failAt: 3}

	assert := assert.New(t)
	assert.NoError(cfg.SelectAll(comp))

	err := jingle.Download(tr, comp, cfg, 0)
	assert.True(errors.Is(err, model.ErrProtocol))
	assert.Len(tr.sent, 3)
}

func TestDownloadRejectsUnevenVoices(t *testing.T) {
	comp := parseTwoVoiceScore(t)

	cfg := jingle.NewConfig()
	tr := &fakeTransport{}

	assert := assert.New(t)
	assert.NoError(cfg.SelectAll(comp))
	assert.NoError(cfg.SetPartForChannel(comp, model.ChannelLeft, 1))

	err := jingle.Download(tr, comp, cfg, 0)
	assert.True(errors.Is(err, model.ErrChannelMismatch))
	assert.Empty(tr.sent)
}

func TestEstimateMatchesDownload(t *testing.T) {
	comp := parseTwoVoiceScore(t)

	cfg := jingle.NewConfig()

	assert := assert.New(t)
	assert.NoError(cfg.SelectAll(comp))

	n, err := jingle.EstimateBytes(comp, cfg)
	assert.NoError(err)
	// header + 3 notes on each channel
	assert.Equal(uint32(4+3*6*2), n)
}
