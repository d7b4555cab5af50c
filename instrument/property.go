package instrument

import (
	"fmt"
	"math"
	"strconv"

	"github.com/qoptics/labdrv/scpi"
	"github.com/qoptics/labdrv/units"
)

// QuantitySetting binds one unit-bearing instrument setting to its command
// prefix and validation rules. Drivers declare these once per setting;
// Get and Set handle unit normalization and validation so that no
// out-of-range or off-step value ever reaches the wire.
type QuantitySetting struct {
	// Name identifies the setting in error messages.
	Name string
	// Command is the set prefix, e.g. ":DWEL".
	Command string
	// Query is the query command, e.g. "DWEL?".
	Query string
	// Unit is the setting's canonical unit. Bare numbers are assumed to
	// be in it; unit-bearing values are rescaled to it before validation.
	Unit units.Unit
	// Min and Max bound the magnitude in Unit, inclusive at both ends.
	Min, Max float64
	// Step, when nonzero, requires the magnitude to be an exact multiple.
	Step float64
}

// Get queries the setting and parses the reply as a magnitude with an
// optional unit token, assuming the canonical unit when absent.
func (s QuantitySetting) Get(ins *Instrument) (units.Quantity, error) {
	payload, err := ins.Query(s.Query)
	if err != nil {
		return units.Quantity{}, err
	}
	q, err := units.Parse(payload, s.Unit)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	return q, nil
}

// Set normalizes value to the canonical unit, validates range and step,
// and sends the encoded command. Validation failures happen before any
// write; the instrument state is untouched on a rejected value.
func (s QuantitySetting) Set(ins *Instrument, value units.Quantity) error {
	q, err := units.Assume(value, s.Unit)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	if q.Mag < s.Min || q.Mag > s.Max {
		return fmt.Errorf("%s %v not in [%v, %v] %s: %w",
			s.Name, q.Mag, s.Min, s.Max, s.Unit, ErrValueOutOfRange)
	}
	if s.Step != 0 {
		// Unit rescaling introduces float noise, so the multiple check
		// carries a tolerance and the magnitude is snapped back onto the
		// exact step grid before encoding.
		steps := q.Mag / s.Step
		if math.Abs(steps-math.Round(steps)) > stepTolerance {
			return fmt.Errorf("%s %v not a multiple of %v %s: %w",
				s.Name, q.Mag, s.Step, s.Unit, ErrValueStep)
		}
		q.Mag = math.Round(steps) * s.Step
	}
	return ins.Send(s.Command + " " + formatMagnitude(q.Mag))
}

const stepTolerance = 1e-9

// formatMagnitude renders a magnitude the way the instruments expect:
// whole numbers without a decimal point, fractions in plain notation.
func formatMagnitude(mag float64) string {
	return strconv.FormatFloat(mag, 'f', -1, 64)
}

// QueryInt queries cmd and parses the reply as a base-10 integer.
func (ins *Instrument) QueryInt(cmd string) (int, error) {
	payload, err := ins.Query(scpi.Query(cmd))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(payload)
	if err != nil {
		return 0, fmt.Errorf("reply to %q: parse %q as integer: %w", cmd, payload, err)
	}
	return n, nil
}

// QueryBool queries cmd and decodes a 0/1 reply. Any other integer is a
// protocol mismatch, not silently coerced.
func (ins *Instrument) QueryBool(cmd string) (bool, error) {
	n, err := ins.QueryInt(cmd)
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("reply to %q: %d: %w", cmd, n, ErrNotBoolean)
	}
}

// CoerceBool accepts a bool, or the integers 0 and 1, and rejects
// everything else. Boolean-like settings use it so callers holding an
// instrument-native 0/1 need not convert first.
func CoerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return false, fmt.Errorf("%v: %w", value, ErrNotBoolean)
}
