package linuxpad

import (
	"fmt"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// DefaultModeButton is the canonical Mode/Guide button most kernel gamepad
// drivers report (the Xbox guide / PS button).
const DefaultModeButton = uint16(evdev.BTN_MODE)

// ParseButton resolves a configured button name or numeric code to an evdev
// key code. Names follow the kernel tables, e.g. BTN_MODE or KEY_MENU.
func ParseButton(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("button code is empty")
	}
	if code, ok := evdev.KEYFromString[raw]; ok {
		return uint16(code), nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown button %q: use names like BTN_MODE/KEY_MENU or a numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("button code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

// ButtonName returns the kernel name for a key code, or its decimal value
// when no name is known.
func ButtonName(code uint16) string {
	name := evdev.CodeName(evdev.EV_KEY, evdev.EvCode(code))
	if name != "" {
		return name
	}
	return strconv.Itoa(int(code))
}
