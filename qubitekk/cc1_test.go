package qubitekk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoptics/labdrv/instrument"
	"github.com/qoptics/labdrv/qubitekk"
	"github.com/qoptics/labdrv/units"
)

func newTestInstrument(t *testing.T) (*instrument.Instrument, *instrument.TestTransport) {
	t.Helper()

	transport := instrument.NewTestTransport()
	config, err := instrument.NewConfigBuilder().
		WithDialer(instrument.TransportDialer{Transport: transport}).
		Build()
	require.NoError(t, err)

	ins, err := instrument.New(context.Background(), config)
	require.NoError(t, err)
	return ins, transport
}

func TestCC1DwellTime(t *testing.T) {
	t.Run("set encodes seconds onto the wire", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetDwellTime(units.Bare(2.5)))
		assert.Equal(t, []string{":DWEL 2.5\n"}, transport.Writes())
	})

	t.Run("set rejects negative dwell before any write", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		err := cc.SetDwellTime(units.Bare(-1))
		assert.ErrorIs(t, err, instrument.ErrValueOutOfRange)
		assert.Zero(t, transport.WriteCount())
	})

	t.Run("get assumes seconds", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		transport.QueueReply("2.5\n")
		q, err := cc.DwellTime()
		require.NoError(t, err)
		assert.Equal(t, units.New(2.5, units.Second), q)
		assert.Equal(t, []string{"DWEL?\n"}, transport.Writes())
	})
}

func TestCC1Window(t *testing.T) {
	t.Run("8 ns exceeds the 7 ns bound", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		err := cc.SetWindow(units.New(8, units.Nanosecond))
		assert.ErrorIs(t, err, instrument.ErrValueOutOfRange)
		assert.Zero(t, transport.WriteCount(), "no command may reach the wire on a rejected value")
	})

	t.Run("valid window is sent", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetWindow(units.Bare(5)))
		assert.Equal(t, []string{":WIND 5\n"}, transport.Writes())
	})

	t.Run("microseconds are rescaled before validation", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		// 0.008 us is 8 ns: still out of range after rescaling.
		err := cc.SetWindow(units.New(0.008, units.Microsecond))
		assert.ErrorIs(t, err, instrument.ErrValueOutOfRange)
		assert.Zero(t, transport.WriteCount())
	})
}

func TestCC1Delay(t *testing.T) {
	t.Run("odd delay violates the 2 ns step", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		err := cc.SetDelay(units.Bare(5))
		assert.ErrorIs(t, err, instrument.ErrValueStep)
		assert.Zero(t, transport.WriteCount())
	})

	t.Run("valid delay is sent as an integer", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetDelay(units.Bare(14)))
		assert.Equal(t, []string{":DELA 14\n"}, transport.Writes())
	})

	t.Run("get parses a bare reply as nanoseconds", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		transport.QueueReply("8\n")
		q, err := cc.Delay()
		require.NoError(t, err)
		assert.Equal(t, units.New(8, units.Nanosecond), q)
	})
}

func TestCC1Channels(t *testing.T) {
	t.Run("external index 2 maps to the coincidence channel C0", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		ch, err := cc.Channel(2)
		require.NoError(t, err)
		assert.Equal(t, "C0", ch.Name())

		transport.QueueReply("42\n")
		count, err := ch.Count()
		require.NoError(t, err)
		assert.Equal(t, 42, count)
		assert.Equal(t, []string{"COUN:C0?\n"}, transport.Writes())
	})

	t.Run("channels are cached per index", func(t *testing.T) {
		ins, _ := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		first, err := cc.Channel(0)
		require.NoError(t, err)
		second, err := cc.Channel(0)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("out-of-range index fails with ErrChannelIndex", func(t *testing.T) {
		ins, _ := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		for _, idx := range []int{-1, 3} {
			_, err := cc.Channel(idx)
			assert.ErrorIs(t, err, instrument.ErrChannelIndex, "index %d", idx)
		}
	})

	t.Run("channel count", func(t *testing.T) {
		ins, _ := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)
		assert.Equal(t, 3, cc.ChannelCount())
	})

	t.Run("count survives a sentinel reply as an error", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		ch, err := cc.Channel(0)
		require.NoError(t, err)

		transport.QueueReply("Unknown command\n")
		_, err = ch.Count()
		assert.ErrorIs(t, err, instrument.ErrUnknownCommand)
	})
}

func TestCC1BooleanSettings(t *testing.T) {
	t.Run("gate on and off use the named command forms", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetGateEnable(true))
		require.NoError(t, cc.SetGateEnable(false))
		assert.Equal(t, []string{":GATE:ON\n", ":GATE:OFF\n"}, transport.Writes())
	})

	t.Run("integers 0 and 1 are accepted", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetCountEnable(1))
		require.NoError(t, cc.SetCountEnable(0))
		assert.Equal(t, []string{":COUN:ON\n", ":COUN:OFF\n"}, transport.Writes())
	})

	t.Run("other integers are rejected before any write", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		assert.ErrorIs(t, cc.SetGateEnable(2), instrument.ErrNotBoolean)
		assert.ErrorIs(t, cc.SetCountEnable("on"), instrument.ErrNotBoolean)
		assert.Zero(t, transport.WriteCount())
	})

	t.Run("getters decode 0/1 replies", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		transport.QueueReply("1\n")
		on, err := cc.GateEnable()
		require.NoError(t, err)
		assert.True(t, on)

		transport.QueueReply("0\n")
		on, err = cc.CountEnable()
		require.NoError(t, err)
		assert.False(t, on)
	})
}

func TestCC1Trigger(t *testing.T) {
	t.Run("code 0 decodes to continuous", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		transport.QueueReply("0\n")
		mode, err := cc.Trigger()
		require.NoError(t, err)
		assert.Equal(t, qubitekk.TriggerContinuous, mode)
		assert.Equal(t, "continuous", mode.String())
	})

	t.Run("unmapped code is a hard error", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		transport.QueueReply("7\n")
		_, err := cc.Trigger()
		assert.ErrorIs(t, err, instrument.ErrUnknownMode)
	})

	t.Run("setter encodes the mode code", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		require.NoError(t, cc.SetTrigger(qubitekk.TriggerStartStop))
		assert.Equal(t, []string{":TRIG 1\n"}, transport.Writes())
	})

	t.Run("setter rejects undeclared modes before any write", func(t *testing.T) {
		ins, transport := newTestInstrument(t)
		cc := qubitekk.NewCC1(ins)

		err := cc.SetTrigger(qubitekk.TriggerMode(5))
		assert.ErrorIs(t, err, instrument.ErrUnknownMode)
		assert.Zero(t, transport.WriteCount())
	})
}

func TestCC1ClearCounts(t *testing.T) {
	ins, transport := newTestInstrument(t)
	cc := qubitekk.NewCC1(ins)

	require.NoError(t, cc.ClearCounts())
	assert.Equal(t, []string{"CLEA\n"}, transport.Writes())
}
