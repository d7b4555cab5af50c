// Package qubitekk provides drivers for Qubitekk laboratory instruments:
// the CC1 hand-held coincidence counter and the MC1 motorized delay stage.
package qubitekk

import (
	"fmt"

	"github.com/qoptics/labdrv/instrument"
	"github.com/qoptics/labdrv/units"
)

// CC1 drives the Qubitekk CC1 coincidence counter.
//
// It has two main setting values, the dwell time and the coincidence
// window. The coincidence window determines how far apart (in ns) two
// detections may be and still count as a coincidence. The dwell time is
// how long the counter accumulates before sending the clear signal.
type CC1 struct {
	ins      *instrument.Instrument
	channels instrument.ChannelMap
	// cache holds constructed channel proxies; a channel is built once
	// per index and never outlives its CC1.
	cache map[int]*Channel
}

// Instrument-native channel identifiers: external indices 0, 1 address
// the detector inputs C1, C2 and index 2 the coincidence channel C0.
var cc1Channels = instrument.NewChannelMap("C1", "C2", "C0")

var (
	cc1Window = instrument.QuantitySetting{
		Name:    "coincidence window",
		Command: ":WIND",
		Query:   "WIND?",
		Unit:    units.Nanosecond,
		Min:     0,
		Max:     7,
	}
	cc1Delay = instrument.QuantitySetting{
		Name:    "delay",
		Command: ":DELA",
		Query:   "DELA?",
		Unit:    units.Nanosecond,
		Min:     0,
		Max:     14,
		Step:    2,
	}
	cc1Dwell = instrument.QuantitySetting{
		Name:    "dwell time",
		Command: ":DWEL",
		Query:   "DWEL?",
		Unit:    units.Second,
		Min:     0,
		Max:     maxDwellSeconds,
	}
)

// The CC1 dwell register holds whole tenths of a second in 32 bits.
const maxDwellSeconds = 4294967295 * 0.1

// NewCC1 binds a CC1 driver to an open instrument connection. The
// instrument should be configured with "\n" terminators (the package
// default).
func NewCC1(ins *instrument.Instrument) *CC1 {
	return &CC1{
		ins:      ins,
		channels: cc1Channels,
		cache:    make(map[int]*Channel),
	}
}

// ChannelCount returns the number of addressable channels.
func (c *CC1) ChannelCount() int {
	return c.channels.Count()
}

// Channel returns the proxy for the external zero-based channel index.
// The proxy is constructed on first access and cached; repeated calls
// with the same index return the same instance.
func (c *CC1) Channel(index int) (*Channel, error) {
	if ch, ok := c.cache[index]; ok {
		return ch, nil
	}
	name, err := c.channels.Name(index)
	if err != nil {
		return nil, err
	}
	ch := &Channel{cc1: c.ins, name: name}
	c.cache[index] = ch
	return ch, nil
}

// Window returns the length of the coincidence window between the two
// signals, in nanoseconds unless the instrument says otherwise.
func (c *CC1) Window() (units.Quantity, error) {
	return cc1Window.Get(c.ins)
}

// SetWindow sets the coincidence window. Bare values are taken as
// nanoseconds; the valid range is [0, 7] ns.
func (c *CC1) SetWindow(value units.Quantity) error {
	return cc1Window.Set(c.ins, value)
}

// Delay returns the delay on channel 1, in nanoseconds.
func (c *CC1) Delay() (units.Quantity, error) {
	return cc1Delay.Get(c.ins)
}

// SetDelay sets the channel 1 delay. Valid values are 0, 2, 4, 6, 8, 10,
// 12 or 14 ns.
func (c *CC1) SetDelay(value units.Quantity) error {
	return cc1Delay.Set(c.ins, value)
}

// DwellTime returns the length of time before a clear signal is sent to
// the counters, in seconds unless the instrument says otherwise.
func (c *CC1) DwellTime() (units.Quantity, error) {
	return cc1Dwell.Get(c.ins)
}

// SetDwellTime sets the dwell time. Bare values are taken as seconds.
func (c *CC1) SetDwellTime(value units.Quantity) error {
	return cc1Dwell.Set(c.ins, value)
}

// GateEnable reports whether the input signals are gated: true means they
// are anded with the gate signal.
func (c *CC1) GateEnable() (bool, error) {
	return c.ins.QueryBool("GATE")
}

// SetGateEnable sets the gate mode. It accepts a bool or the integers
// 0 and 1; any other value is rejected before a command is sent.
func (c *CC1) SetGateEnable(value any) error {
	on, err := instrument.CoerceBool(value)
	if err != nil {
		return fmt.Errorf("gate enable: %w", err)
	}
	if on {
		return c.ins.Send(":GATE:ON")
	}
	return c.ins.Send(":GATE:OFF")
}

// CountEnable reports the count mode: true means the dwell time passes
// before the counters are cleared, false means they are cleared every
// 0.1 seconds.
func (c *CC1) CountEnable() (bool, error) {
	return c.ins.QueryBool("COUN")
}

// SetCountEnable sets the count mode. It accepts a bool or the integers
// 0 and 1.
func (c *CC1) SetCountEnable(value any) error {
	on, err := instrument.CoerceBool(value)
	if err != nil {
		return fmt.Errorf("count enable: %w", err)
	}
	if on {
		return c.ins.Send(":COUN:ON")
	}
	return c.ins.Send(":COUN:OFF")
}

// Trigger returns the current trigger mode: continuous tallying every
// dwell time over and over, or start/stop tallying between start and stop
// triggers.
func (c *CC1) Trigger() (TriggerMode, error) {
	code, err := c.ins.QueryInt("TRIG")
	if err != nil {
		return 0, err
	}
	return triggerModeFromCode(code)
}

// SetTrigger sets the trigger mode.
func (c *CC1) SetTrigger(mode TriggerMode) error {
	code, err := mode.code()
	if err != nil {
		return err
	}
	return c.ins.Send(fmt.Sprintf(":TRIG %d", code))
}

// ClearCounts clears the current total counts on the counters.
func (c *CC1) ClearCounts() error {
	return c.ins.Send("CLEA")
}

// Channel represents one addressable channel on the CC1. It holds a
// non-owning reference back to the instrument connection and delegates
// all I/O to it.
type Channel struct {
	cc1  *instrument.Instrument
	name string
}

// Name returns the instrument's internal identifier for this channel.
func (ch *Channel) Name() string {
	return ch.name
}

// Count returns the accumulated counts of this channel.
func (ch *Channel) Count() (int, error) {
	return ch.cc1.QueryInt("COUN:" + ch.name)
}
