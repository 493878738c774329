// Package gamemode implements the mode-switch core: a two-state machine
// (desktop/game) driven by gamepad button edges, persisted as a symlink the
// login manager reads at startup. All hardware and process side effects are
// injected so the state machine can be driven with synthetic events.
package gamemode

// Mode identifies which login configuration is active.
type Mode int

const (
	ModeDesktop Mode = iota
	ModeGame
)

func (m Mode) String() string {
	switch m {
	case ModeDesktop:
		return "desktop"
	case ModeGame:
		return "game"
	default:
		return "unknown"
	}
}

// Other returns the counterpart mode.
func (m Mode) Other() Mode {
	if m == ModeDesktop {
		return ModeGame
	}
	return ModeDesktop
}

// ButtonEvent is one key state change from a gamepad. Code is the raw evdev
// key code; Device identifies the originating handle for per-pad tracking.
type ButtonEvent struct {
	Device  string
	Code    uint16
	Pressed bool
}

// Source produces button events from whatever hardware is attached. Poll
// never blocks: it drains pending events and reports handles that have
// disappeared since the previous call. Zero connected devices is not an
// error; err is reserved for enumeration-level failures.
type Source interface {
	Poll() (events []ButtonEvent, gone []string, err error)
}

// Restarter restarts the login-manager service so a repointed configuration
// takes effect. A failed restart leaves the on-disk mode as-is.
type Restarter interface {
	Restart() error
}

// SessionGuard reports whether a real user session currently owns the
// greeter's terminal, in which case toggles are suppressed.
type SessionGuard interface {
	SessionActive() (bool, error)
}

// Logger is the logging surface the core depends on. *slog.Logger satisfies
// it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
