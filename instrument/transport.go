package instrument

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to an
// instrument.
//
// A Transport is assumed to be already connected and ready for use. It
// provides the low-level I/O primitives required to send commands and
// receive replies. Typical implementations include serial ports, GPIB
// adapters exposed as character devices, or in-memory fakes used for
// testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to an instrument.
//
// Dialer abstracts how the connection is created (serial port, USB-CDC
// device, test double) and is intended to be used during instrument
// construction only. Once a Transport is obtained, the Dialer is no
// longer needed. The Transport is exclusively owned by the Instrument
// that dialed it.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may perform
	// blocking operations and should respect cancellation provided by
	// the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens an instrument over a serial port using
// go.bug.st/serial.
type SerialDialer struct {
	// PortName is the serial device path, e.g. "/dev/ttyUSB0" or "COM8".
	PortName string
	// BaudRate is used when Mode is nil. Coincidence counters in this
	// family default to 19200.
	BaudRate int
	// Mode overrides the full port configuration when set.
	Mode *serial.Mode
	// ReadTimeout is applied to the port so that a reply that never
	// arrives surfaces as a timeout instead of blocking forever.
	ReadTimeout time.Duration
}

// Dial opens and configures the serial port.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("instrument: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("instrument: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = 19200
		}
		mode = &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", d.PortName, err)
	}

	if d.ReadTimeout > 0 {
		if err := port.SetReadTimeout(d.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %q: %w", d.PortName, err)
		}
	}

	return port, nil
}
