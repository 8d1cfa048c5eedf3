// Package serial implements the jingle.Transport contract over a real
// serial/USB link to the controller's dev-board firmware.
package serial

import (
	"fmt"
	"log/slog"
	"time"

	goserial "go.bug.st/serial"

	"github.com/Solteris-Dev/OpenSteamController/model"
)

// How long to wait for the firmware to echo a full response before
// declaring the exchange dead. The firmware echoes as it parses, so
// normal responses arrive well inside this.
const responseTimeout = 2 * time.Second

type Port struct {
	port goserial.Port
}

// Open opens the named serial device at the given baud rate.
func Open(device string, baud int) (*Port, error) {
	mode := &goserial.Mode{BaudRate: baud}
	p, err := goserial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	if err := p.SetReadTimeout(100 * time.Millisecond); err != nil {
		p.Close()
		return nil, fmt.Errorf("serial: set read timeout: %w", err)
	}
	slog.Info("serial: port opened", "device", device, "baud", baud)
	return &Port{port: p}, nil
}

// Send writes one command and blocks until the device has echoed
// exactly the expected response, len(expected) bytes. Any deviation,
// short read or link failure is a protocol error; the exchange cannot
// be retried mid-command.
func (p *Port) Send(cmd, expected string) error {
	if _, err := p.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("%w: write: %v", model.ErrProtocol, err)
	}

	buf := make([]byte, len(expected))
	got := 0
	deadline := time.Now().Add(responseTimeout)
	for got < len(buf) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: timeout after %d of %d response bytes",
				model.ErrProtocol, got, len(buf))
		}
		n, err := p.port.Read(buf[got:])
		if err != nil {
			return fmt.Errorf("%w: read: %v", model.ErrProtocol, err)
		}
		got += n
	}

	if string(buf) != expected {
		slog.Debug("serial: response mismatch", "got", string(buf), "want", expected)
		return fmt.Errorf("%w: unexpected response %q", model.ErrProtocol, string(buf))
	}
	return nil
}

func (p *Port) Close() error {
	slog.Info("serial: closing port")
	return p.port.Close()
}
