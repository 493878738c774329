package gamemode

// EdgeDetector tracks the mode button's pressed state per gamepad handle and
// reports a toggle on the press-to-release transition. Firing on release
// rather than press means holding the button produces exactly one toggle.
type EdgeDetector struct {
	codes   map[uint16]struct{}
	pressed map[string]bool
}

// NewEdgeDetector watches the given evdev key codes as mode buttons. Any
// event carrying another code is ignored.
func NewEdgeDetector(codes []uint16) *EdgeDetector {
	set := make(map[uint16]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return &EdgeDetector{
		codes:   set,
		pressed: make(map[string]bool),
	}
}

// Observe feeds one button event and reports whether it completes a
// press-then-release gesture on a mode button. Each device is tracked
// independently; a release without a preceding press (e.g. the button was
// already down when the device appeared) does not fire.
func (d *EdgeDetector) Observe(ev ButtonEvent) bool {
	if _, ok := d.codes[ev.Code]; !ok {
		return false
	}
	if ev.Pressed {
		d.pressed[ev.Device] = true
		return false
	}
	if !d.pressed[ev.Device] {
		return false
	}
	d.pressed[ev.Device] = false
	return true
}

// Forget drops the tracked state for a disconnected device.
func (d *EdgeDetector) Forget(device string) {
	delete(d.pressed, device)
}
