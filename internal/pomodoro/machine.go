package pomodoro

import (
	"errors"
	"fmt"
)

var ErrInvalidMode = errors.New("pomodoro: invalid mode")

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

const (
	FocusDurationSec      = 25 * 60
	ShortBreakDurationSec = 5 * 60
	LongBreakDurationSec  = 15 * 60

	// SessionsPerCycle is how many focus blocks precede a long break.
	SessionsPerCycle = 4
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

func (m Mode) DurationSec() int {
	switch m {
	case ModeShortBreak:
		return ShortBreakDurationSec
	case ModeLongBreak:
		return LongBreakDurationSec
	default:
		return FocusDurationSec
	}
}

func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// Machine is the timer state. It is a value type driven by the caller's
// one-second tick; it owns no timer of its own, so the owning component can
// cancel the schedule on teardown without reaching in here.
type Machine struct {
	Mode         Mode
	Session      int
	RemainingSec int
	Running      bool
}

func New() Machine {
	return Machine{
		Mode:         ModeFocus,
		Session:      1,
		RemainingSec: FocusDurationSec,
	}
}

// Start arms the countdown. Starting while already armed is a no-op.
func (m Machine) Start() Machine {
	if m.Running {
		return m
	}
	if m.RemainingSec <= 0 {
		m.RemainingSec = m.Mode.DurationSec()
	}
	m.Running = true
	return m
}

func (m Machine) Pause() Machine {
	m.Running = false
	return m
}

func (m Machine) Toggle() Machine {
	if m.Running {
		return m.Pause()
	}
	return m.Start()
}

// Reset stops the timer and restores the full duration of the current mode.
// Mode and session counter are unchanged.
func (m Machine) Reset() Machine {
	m.Running = false
	m.RemainingSec = m.Mode.DurationSec()
	return m
}

// ChangeMode force-switches immediately and stops the timer; the caller must
// explicitly restart.
func (m Machine) ChangeMode(mode Mode) (Machine, error) {
	if !mode.IsValid() {
		return m, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	m.Mode = mode
	m.RemainingSec = mode.DurationSec()
	m.Running = false
	return m, nil
}

// Tick advances the countdown by one second. The returned bool reports a
// completed focus block, which is the caller's cue to count a session.
func (m Machine) Tick() (Machine, bool) {
	if !m.Running {
		return m, false
	}
	if m.RemainingSec > 0 {
		m.RemainingSec--
	}
	if m.RemainingSec > 0 {
		return m, false
	}
	return m.complete()
}

func (m Machine) complete() (Machine, bool) {
	m.Running = false
	if m.Mode == ModeFocus {
		if m.Session == SessionsPerCycle {
			m.Mode = ModeLongBreak
			m.Session = 1
		} else {
			m.Mode = ModeShortBreak
			m.Session++
		}
		m.RemainingSec = m.Mode.DurationSec()
		return m, true
	}
	m.Mode = ModeFocus
	m.RemainingSec = FocusDurationSec
	return m, false
}

// ProgressPercent is how far the current countdown has advanced.
func (m Machine) ProgressPercent() int {
	total := m.Mode.DurationSec()
	if total <= 0 {
		return 0
	}
	return (total - m.RemainingSec) * 100 / total
}
