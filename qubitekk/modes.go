package qubitekk

import (
	"fmt"

	"github.com/qoptics/labdrv/instrument"
)

// TriggerMode selects how the CC1 tallies counts. The mapping to
// instrument codes is closed; codes outside it are a hard error rather
// than passed through.
type TriggerMode int

const (
	// TriggerContinuous tallies counts every dwell time, over and over.
	TriggerContinuous TriggerMode = iota
	// TriggerStartStop tallies counts between start and stop triggers.
	TriggerStartStop
)

func (m TriggerMode) String() string {
	switch m {
	case TriggerContinuous:
		return "continuous"
	case TriggerStartStop:
		return "start_stop"
	default:
		return fmt.Sprintf("TriggerMode(%d)", int(m))
	}
}

func (m TriggerMode) code() (int, error) {
	switch m {
	case TriggerContinuous, TriggerStartStop:
		return int(m), nil
	default:
		return 0, fmt.Errorf("trigger mode %d: %w", int(m), instrument.ErrUnknownMode)
	}
}

func triggerModeFromCode(code int) (TriggerMode, error) {
	switch code {
	case 0:
		return TriggerContinuous, nil
	case 1:
		return TriggerStartStop, nil
	default:
		return 0, fmt.Errorf("trigger mode code %d: %w", code, instrument.ErrUnknownMode)
	}
}

// MotorController identifies the motor driver hardware inside an MC1.
type MotorController int

const (
	MotorRadio MotorController = iota
	MotorRelay
)

func (m MotorController) String() string {
	switch m {
	case MotorRadio:
		return "radio"
	case MotorRelay:
		return "relay"
	default:
		return fmt.Sprintf("MotorController(%d)", int(m))
	}
}

func motorControllerFromCode(code int) (MotorController, error) {
	switch code {
	case 0:
		return MotorRadio, nil
	case 1:
		return MotorRelay, nil
	default:
		return 0, fmt.Errorf("motor controller code %d: %w", code, instrument.ErrUnknownMode)
	}
}
