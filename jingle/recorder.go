package jingle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Recorder wraps a Transport and keeps every command it forwarded, in
// order, so a download can be replayed or diffed later. Commands are
// recorded before sending; a transcript therefore includes the command
// that failed.
type Recorder struct {
	inner Transport
	cmds  []string
}

func NewRecorder(inner Transport) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) Send(cmd, expected string) error {
	r.cmds = append(r.cmds, cmd)
	return r.inner.Send(cmd, expected)
}

// Commands returns the recorded command sequence.
func (r *Recorder) Commands() []string {
	return r.cmds
}

// WriteFile saves the transcript under a fresh uuid-based name in dir
// and returns the path.
func (r *Recorder) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, uuid.New().String()+".jingle")
	err := os.WriteFile(path, []byte(strings.Join(r.cmds, "")), 0666)
	if err != nil {
		return "", err
	}
	return path, nil
}
