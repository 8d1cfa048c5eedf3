package jingle

import (
	"fmt"

	"github.com/Solteris-Dev/OpenSteamController/constants"
	"github.com/Solteris-Dev/OpenSteamController/model"
	"github.com/Solteris-Dev/OpenSteamController/score"
)

// EstimateBytes computes how much controller EEPROM the configured
// selection would occupy: a fixed jingle header plus a per-note cost on
// each channel. Pure pre-flight check; nothing is sent.
func EstimateBytes(comp *score.Composition, cfg *Config) (uint32, error) {
	start, end := cfg.MeasureRange()

	total := uint32(constants.JingleHeaderBytes)
	for _, ch := range model.Channels {
		partIdx := cfg.PartForChannel(ch)
		if partIdx >= uint32(len(comp.Parts)) {
			return 0, fmt.Errorf("%w: part %d for %s channel, score has %d",
				model.ErrBadIndex, partIdx, ch, len(comp.Parts))
		}
		total += comp.Parts[partIdx].NumNotesInRange(start, end) * constants.BytesPerNote
	}
	return total, nil
}
