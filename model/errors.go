package model

import "errors"

// Error kinds shared across the parsing and download pipeline. Callers
// match them with errors.Is; the wrapped messages carry the construct
// that failed.
var (
	// ErrXMLStructure: an element was malformed or appeared out of the
	// expected context.
	ErrXMLStructure = errors.New("unexpected score structure")

	// ErrInvalidPitch: a step letter outside A-G.
	ErrInvalidPitch = errors.New("invalid pitch")

	// ErrChordWithoutNote: a chord marker with no note to attach to in
	// the current measure.
	ErrChordWithoutNote = errors.New("chord without preceding note")

	// ErrZeroBackup: a backup that rewinds by nothing.
	ErrZeroBackup = errors.New("backup with zero duration")

	// ErrBackupUnderflow: a note longer than the backup scope it is in.
	ErrBackupUnderflow = errors.New("note duration exceeds remaining backup")

	// ErrUnresolvedBackup: a measure or part ended with a backup scope
	// still holding unconsumed duration.
	ErrUnresolvedBackup = errors.New("backup not fully consumed")

	// ErrBadIndex: a part or measure index outside the parsed timeline.
	ErrBadIndex = errors.New("index out of range")

	// ErrChannelMismatch: the right and left parts disagree on note
	// counts over the configured range, so a single allocate command
	// cannot cover both.
	ErrChannelMismatch = errors.New("channel note counts differ over range")

	// ErrProtocol: the device response did not match expectation, or
	// the transport failed mid-command.
	ErrProtocol = errors.New("device protocol failure")
)
