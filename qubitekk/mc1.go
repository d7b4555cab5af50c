package qubitekk

import (
	"fmt"

	"github.com/qoptics/labdrv/instrument"
	"github.com/qoptics/labdrv/units"
)

// MC1 drives the Qubitekk MC1 motorized delay stage.
//
// Centering is a device-side operation: Center starts it and returns
// immediately, and Centering answers a point-in-time status query. The
// caller polls (instrument.Wait is a convenience for that) until the
// stage reports done. Travel limits and the step increment are host-side
// soft state only; no command traffic is involved in changing them.
type MC1 struct {
	ins *instrument.Instrument

	// Soft travel limits and step increment, in encoder steps.
	lowerLimit int
	upperLimit int
	increment  int
}

// NewMC1 binds an MC1 driver to an open instrument connection.
func NewMC1(ins *instrument.Instrument) *MC1 {
	return &MC1{
		ins:        ins,
		lowerLimit: -300,
		upperLimit: 300,
		increment:  1,
	}
}

// Firmware returns the stage's firmware identification string.
func (m *MC1) Firmware() (string, error) {
	return m.ins.Query("FIRM?")
}

// Controller returns the motor controller type fitted in the stage.
func (m *MC1) Controller() (MotorController, error) {
	code, err := m.ins.QueryInt("MOTO")
	if err != nil {
		return 0, err
	}
	return motorControllerFromCode(code)
}

// Center starts centering the stage and returns immediately. Completion
// is observed via Centering.
func (m *MC1) Center() error {
	return m.ins.Send(":CENT")
}

// Centering reports whether a centering operation is still in progress.
// It performs a single status query and never blocks waiting for the
// stage.
func (m *MC1) Centering() (bool, error) {
	n, err := m.ins.QueryInt("CENT")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Position returns the current stage position in encoder steps.
func (m *MC1) Position() (int, error) {
	return m.ins.QueryInt("POSI")
}

// MetricPosition returns the current stage position as a travel distance.
// One encoder step moves the stage 0.05 mm.
func (m *MC1) MetricPosition() (units.Quantity, error) {
	steps, err := m.Position()
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(float64(steps)*0.05, units.Millimeter), nil
}

// Direction returns the direction flag of the last movement.
func (m *MC1) Direction() (int, error) {
	return m.ins.QueryInt("DIRE")
}

// MoveTimeout returns the remaining movement time budget reported by the
// stage. A value of zero means the last move has settled.
func (m *MC1) MoveTimeout() (int, error) {
	return m.ins.QueryInt("TIME")
}

// Move commands the stage to the given position in encoder steps. The
// position is validated against the soft travel limits before any
// command is sent.
func (m *MC1) Move(position int) error {
	if position < m.lowerLimit || position > m.upperLimit {
		return fmt.Errorf("position %d not in [%d, %d]: %w",
			position, m.lowerLimit, m.upperLimit, instrument.ErrValueOutOfRange)
	}
	return m.ins.Send(fmt.Sprintf(":MOVE %d", position))
}

// Limits returns the soft travel limits in encoder steps.
func (m *MC1) Limits() (lower, upper int) {
	return m.lowerLimit, m.upperLimit
}

// SetLimits replaces the soft travel limits. The mechanical delay line
// restricts usable travel to less than the motor's full range; callers
// set these to match their installation.
func (m *MC1) SetLimits(lower, upper int) error {
	if lower > upper {
		return fmt.Errorf("lower limit %d above upper limit %d: %w",
			lower, upper, instrument.ErrValueOutOfRange)
	}
	m.lowerLimit = lower
	m.upperLimit = upper
	return nil
}

// Increment returns the step increment used by Range.
func (m *MC1) Increment() int {
	return m.increment
}

// SetIncrement replaces the step increment.
func (m *MC1) SetIncrement(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("increment %d must be positive: %w",
			steps, instrument.ErrValueOutOfRange)
	}
	m.increment = steps
	return nil
}

// Range returns the positions from the lower to the upper travel limit,
// spaced by the increment. Sweep scans iterate over it and Move to each.
func (m *MC1) Range() []int {
	var positions []int
	for pos := m.lowerLimit; pos <= m.upperLimit; pos += m.increment {
		positions = append(positions, pos)
	}
	return positions
}
