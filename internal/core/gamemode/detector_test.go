package gamemode

import "testing"

const testModeButton uint16 = 0x13c

func press(dev string) ButtonEvent {
	return ButtonEvent{Device: dev, Code: testModeButton, Pressed: true}
}

func release(dev string) ButtonEvent {
	return ButtonEvent{Device: dev, Code: testModeButton, Pressed: false}
}

func TestEdgeDetectorTogglesOnRelease(t *testing.T) {
	tests := []struct {
		name   string
		events []ButtonEvent
		want   int
	}{
		{
			name:   "press then release fires once",
			events: []ButtonEvent{press("a"), release("a")},
			want:   1,
		},
		{
			name:   "press alone does not fire",
			events: []ButtonEvent{press("a")},
			want:   0,
		},
		{
			name: "held button repeats do not fire",
			events: []ButtonEvent{
				press("a"), press("a"), press("a"), release("a"),
			},
			want: 1,
		},
		{
			name:   "release without press does not fire",
			events: []ButtonEvent{release("a")},
			want:   0,
		},
		{
			name: "double release fires once",
			events: []ButtonEvent{
				press("a"), release("a"), release("a"),
			},
			want: 1,
		},
		{
			name: "two full gestures fire twice",
			events: []ButtonEvent{
				press("a"), release("a"), press("a"), release("a"),
			},
			want: 2,
		},
		{
			name: "unknown button ignored",
			events: []ButtonEvent{
				{Device: "a", Code: 0x130, Pressed: true},
				{Device: "a", Code: 0x130, Pressed: false},
			},
			want: 0,
		},
		{
			name: "two pads tracked independently",
			events: []ButtonEvent{
				press("a"), press("b"), release("a"), release("b"),
			},
			want: 2,
		},
		{
			name: "release on wrong pad does not fire",
			events: []ButtonEvent{
				press("a"), release("b"),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := NewEdgeDetector([]uint16{testModeButton})
			got := 0
			for _, ev := range tt.events {
				if det.Observe(ev) {
					got++
				}
			}
			if got != tt.want {
				t.Fatalf("toggle count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEdgeDetectorForgetClearsHeldState(t *testing.T) {
	det := NewEdgeDetector([]uint16{testModeButton})

	if det.Observe(press("a")) {
		t.Fatalf("press should not fire")
	}
	det.Forget("a")
	if det.Observe(release("a")) {
		t.Fatalf("release after disconnect should not fire")
	}
}

func TestEdgeDetectorMultipleCodes(t *testing.T) {
	const menuButton uint16 = 0x8b
	det := NewEdgeDetector([]uint16{testModeButton, menuButton})

	det.Observe(ButtonEvent{Device: "a", Code: menuButton, Pressed: true})
	if !det.Observe(ButtonEvent{Device: "a", Code: menuButton, Pressed: false}) {
		t.Fatalf("expected toggle from alternate mode button code")
	}
}
