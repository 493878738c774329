// Package session detects whether a real user session currently owns the
// greeter's virtual terminal, so mode toggles are ignored while somebody is
// logged in there.
package session

import (
	"fmt"
	"os/exec"
	"strings"
)

// TTYGuard answers SessionActive by parsing `who` output for logins on the
// greeter's tty. greetd's own greeter session does not count.
type TTYGuard struct {
	tty string
}

// NewTTYGuard guards the given virtual terminal number (vt 1 -> "tty1").
func NewTTYGuard(vt int) *TTYGuard {
	return &TTYGuard{tty: fmt.Sprintf("tty%d", vt)}
}

func (g *TTYGuard) SessionActive() (bool, error) {
	out, err := exec.Command("who").Output()
	if err != nil {
		return false, fmt.Errorf("who: %w", err)
	}
	return activeOnTTY(string(out), g.tty), nil
}

// activeOnTTY reports whether any non-greetd login line names the tty. who
// prints one line per session: user, tty, login time.
func activeOnTTY(output, tty string) bool {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != tty {
			continue
		}
		if strings.Contains(line, "greetd") {
			continue
		}
		return true
	}
	return false
}
