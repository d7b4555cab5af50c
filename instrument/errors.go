package instrument

import "errors"

var (
	// ErrNoDialer is returned when an Instrument is constructed without a
	// Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order
	// to establish a connection to the instrument.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrAlreadyClosed is returned when an operation is attempted on an
	// Instrument whose transport has been closed. Cached channels and
	// decoded values remain valid; only I/O fails.
	ErrAlreadyClosed = errors.New("instrument already closed")
)

var (
	// ErrUnknownCommand is returned when the instrument replies with the
	// unknown-command sentinel. It indicates a driver/firmware mismatch
	// and is never retried automatically.
	ErrUnknownCommand = errors.New("instrument reported unknown command")
)

var (
	// ErrValueOutOfRange is returned by a property setter when the
	// candidate value falls outside the setting's declared bounds.
	// No command has been sent; retrying with a corrected value is safe.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrValueStep is returned by a property setter when the candidate
	// value is not an exact multiple of the setting's granularity.
	ErrValueStep = errors.New("value violates step granularity")

	// ErrNotBoolean is returned when a boolean-like setting receives a
	// value that is neither a bool nor the integer 0 or 1.
	ErrNotBoolean = errors.New("value is not a boolean")
)

var (
	// ErrChannelIndex is returned for a channel index outside
	// [0, channel count).
	ErrChannelIndex = errors.New("channel index out of range")

	// ErrUnknownMode is returned when a mode code read from the
	// instrument is not in the declared mapping, or a caller supplies a
	// value that is not one of the declared modes. Mode mappings are
	// closed sets; unexpected codes are a hard error.
	ErrUnknownMode = errors.New("unknown mode")
)
