// Package systemdctl shells out for the privileged actions the core cannot
// perform itself: restarting the login-manager unit and switching the
// foreground virtual terminal. Escalation goes through non-interactive sudo
// so a missing sudoers entry fails immediately instead of prompting.
package systemdctl

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Invoker restarts a systemd unit and optionally switches VTs. It satisfies
// both capability interfaces the mode-switch service takes.
type Invoker struct {
	unit    string
	vt      int
	useSudo bool
}

// NewInvoker builds an invoker for the given unit. vt is the virtual
// terminal SwitchVT changes to; useSudo prefixes every command with
// "sudo -n" for installs that do not run the daemon as root.
func NewInvoker(unit string, vt int, useSudo bool) *Invoker {
	return &Invoker{unit: unit, vt: vt, useSudo: useSudo}
}

// Restart restarts the login-manager unit and waits for the command to
// finish. Any non-zero exit or spawn failure comes back as an error; the
// caller decides that it is recoverable.
func (i *Invoker) Restart() error {
	return run(restartArgv(i.unit, i.useSudo))
}

// SwitchVT brings the configured virtual terminal to the foreground.
func (i *Invoker) SwitchVT() error {
	if i.vt <= 0 {
		return fmt.Errorf("no virtual terminal configured")
	}
	return run(switchVTArgv(i.vt, i.useSudo))
}

func restartArgv(unit string, useSudo bool) []string {
	argv := []string{"systemctl", "restart", unit}
	if useSudo {
		argv = append([]string{"sudo", "-n"}, argv...)
	}
	return argv
}

func switchVTArgv(vt int, useSudo bool) []string {
	argv := []string{"chvt", strconv.Itoa(vt)}
	if useSudo {
		argv = append([]string{"sudo", "-n"}, argv...)
	}
	return argv
}

// run executes one command to completion, surfacing captured stderr when the
// command exits non-zero.
func run(argv []string) error {
	_, err := exec.Command(argv[0], argv[1:]...).Output()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
			return fmt.Errorf("%s: %s", strings.Join(argv, " "), msg)
		}
	}
	return fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
}
