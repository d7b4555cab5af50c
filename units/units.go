// Package units provides the small magnitude+unit value type instrument
// drivers exchange with validated properties. Instrument replies are plain
// numbers with an implied unit; this package is the single place that
// implied-unit ambiguity is resolved.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrIncompatibleUnits is returned when a conversion is requested
	// between units of different dimensions, e.g. nanoseconds to meters.
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrParse is returned when the numeric portion of a quantity string
	// is not a valid number.
	ErrParse = errors.New("malformed quantity")
)

// Dimension identifies the physical dimension a Unit measures.
type Dimension int

const (
	Dimensionless Dimension = iota
	Time
	Length
)

// Unit is a named linear scale over one Dimension. Factor converts a
// magnitude in this unit to the dimension's base unit (seconds, meters).
type Unit struct {
	Symbol string
	Dim    Dimension
	Factor float64
}

var (
	Second      = Unit{Symbol: "s", Dim: Time, Factor: 1}
	Millisecond = Unit{Symbol: "ms", Dim: Time, Factor: 1e-3}
	Microsecond = Unit{Symbol: "us", Dim: Time, Factor: 1e-6}
	Nanosecond  = Unit{Symbol: "ns", Dim: Time, Factor: 1e-9}

	Meter      = Unit{Symbol: "m", Dim: Length, Factor: 1}
	Millimeter = Unit{Symbol: "mm", Dim: Length, Factor: 1e-3}
	Micrometer = Unit{Symbol: "um", Dim: Length, Factor: 1e-6}
)

// unitTable maps the unit tokens instruments emit to their Unit.
var unitTable = map[string]Unit{
	"s":  Second,
	"ms": Millisecond,
	"us": Microsecond,
	"ns": Nanosecond,
	"m":  Meter,
	"mm": Millimeter,
	"um": Micrometer,
}

// IsZero reports whether u is the zero Unit, i.e. a bare number with no
// unit attached yet.
func (u Unit) IsZero() bool {
	return u.Factor == 0
}

func (u Unit) String() string {
	return u.Symbol
}

// Quantity is a magnitude together with its Unit. A Quantity with a zero
// Unit is a bare number awaiting unit assumption via Assume.
type Quantity struct {
	Mag  float64
	Unit Unit
}

// New builds a Quantity of mag in unit u.
func New(mag float64, u Unit) Quantity {
	return Quantity{Mag: mag, Unit: u}
}

// Bare builds a unitless Quantity. Callers pass these to setters that
// declare a canonical unit; Assume fills the unit in.
func Bare(mag float64) Quantity {
	return Quantity{Mag: mag}
}

func (q Quantity) String() string {
	if q.Unit.IsZero() {
		return strconv.FormatFloat(q.Mag, 'g', -1, 64)
	}
	return strconv.FormatFloat(q.Mag, 'g', -1, 64) + " " + q.Unit.Symbol
}

// Convert rescales q to the target unit. It fails with
// ErrIncompatibleUnits when the dimensions differ or q is bare.
func (q Quantity) Convert(to Unit) (Quantity, error) {
	if q.Unit.IsZero() || q.Unit.Dim != to.Dim {
		return Quantity{}, fmt.Errorf("convert %v to %s: %w", q, to.Symbol, ErrIncompatibleUnits)
	}
	return Quantity{Mag: q.Mag * q.Unit.Factor / to.Factor, Unit: to}, nil
}

// Assume resolves a possibly-bare Quantity against a default unit: a bare
// number is taken to already be in def, a unit-bearing one is rescaled to
// def. This is the single unit-assumption point for every validated
// property, in both directions.
func Assume(q Quantity, def Unit) (Quantity, error) {
	if q.Unit.IsZero() {
		return Quantity{Mag: q.Mag, Unit: def}, nil
	}
	return q.Convert(def)
}

// Parse splits a numeric magnitude from an optional trailing unit token,
// e.g. "2.5 ns", "2.5ns" or "2.5". When no unit token is present the
// default unit is assumed.
func Parse(text string, def Unit) (Quantity, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Quantity{}, fmt.Errorf("parse %q: %w", text, ErrParse)
	}

	// Find where the numeric portion ends.
	end := len(s)
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			continue
		}
		end = i
		break
	}

	mag, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse %q: %w", text, ErrParse)
	}

	token := strings.TrimSpace(s[end:])
	if token == "" {
		return Quantity{Mag: mag, Unit: def}, nil
	}
	u, ok := unitTable[token]
	if !ok {
		return Quantity{}, fmt.Errorf("parse %q: unknown unit %q: %w", text, token, ErrParse)
	}
	return Quantity{Mag: mag, Unit: u}, nil
}
