// Package instrument implements the command/response protocol layer shared
// by every driver in this module: command framing, reply classification,
// validated property plumbing, channel index mapping, and polling of
// long-running device-side operations.
//
// An Instrument assumes a single logical owner. No internal locking is
// provided; concurrent calls from multiple goroutines must be serialized
// by the caller.
package instrument

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/qoptics/labdrv/scpi"
)

// Instrument owns one exclusive Transport and frames textual commands and
// replies on it. Drivers build their settings on Send and Query; the
// unknown-command detection is centralized here so per-instrument code
// never re-implements error sniffing.
type Instrument struct {
	// transport is the physical connection to the instrument
	transport Transport
	// scanner tokenizes the reply stream on the response terminator;
	// replies may arrive in arbitrary chunks
	scanner *bufio.Scanner
	// config holds the framing configuration, fixed at construction
	config Config
	// closed indicates the transport has been released
	closed bool
	// log receives wire-traffic debug records
	log *slog.Logger
}

// New dials the transport and returns an Instrument bound to it. The
// Transport is exclusively owned by the returned Instrument and released
// by Close.
func New(ctx context.Context, config Config) (*Instrument, error) {
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial instrument: %w", err)
	}

	log := config.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	scanner := bufio.NewScanner(transport)
	scanner.Split(scpi.Splitter(config.ResponseTerminator))

	return &Instrument{
		transport: transport,
		scanner:   scanner,
		config:    config,
		log:       log,
	}, nil
}

// Send frames cmd with the outgoing terminator and writes it to the
// transport. The instrument's state may change as a result; once bytes
// are written there is no cancelling the command.
func (ins *Instrument) Send(cmd string) error {
	if ins.closed {
		return ErrAlreadyClosed
	}

	wire := strings.TrimSpace(cmd) + ins.config.Terminator
	ins.log.Debug("send", "cmd", cmd)
	if _, err := ins.transport.Write([]byte(wire)); err != nil {
		return fmt.Errorf("write command %q: %w", cmd, err)
	}
	return nil
}

// Query performs Send, then reads one reply framed by the response
// terminator and classifies it. A reply whose trimmed payload equals the
// unknown-command sentinel yields ErrUnknownCommand; it is never returned
// as data, even if it would parse. Transport failures are surfaced
// wrapped, never retried.
func (ins *Instrument) Query(cmd string) (string, error) {
	if err := ins.Send(cmd); err != nil {
		return "", err
	}

	line, err := ins.readReply()
	if err != nil {
		return "", fmt.Errorf("read reply to %q: %w", cmd, err)
	}
	ins.log.Debug("reply", "cmd", cmd, "payload", line)

	payload := strings.TrimSpace(line)
	if scpi.Classify(payload) == scpi.TypeError {
		return "", fmt.Errorf("command %q: %w", cmd, ErrUnknownCommand)
	}
	return payload, nil
}

// readReply reads one reply framed by the response terminator.
func (ins *Instrument) readReply() (string, error) {
	if !ins.scanner.Scan() {
		if err := ins.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return ins.scanner.Text(), nil
}

// Close releases the transport. Cached sub-objects remain valid logical
// values; subsequent I/O on them fails with ErrAlreadyClosed.
func (ins *Instrument) Close() error {
	if ins.closed {
		return ErrAlreadyClosed
	}
	ins.closed = true

	if ins.transport != nil {
		return ins.transport.Close()
	}
	return nil
}
