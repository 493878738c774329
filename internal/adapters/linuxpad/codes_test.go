package linuxpad

import "testing"

func TestParseButton(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    uint16
		wantErr bool
	}{
		{name: "kernel name", value: "BTN_MODE", want: DefaultModeButton},
		{name: "lowercase name", value: "btn_mode", want: DefaultModeButton},
		{name: "padded name", value: " KEY_MENU ", want: 0x8b},
		{name: "decimal code", value: "316", want: 316},
		{name: "hex code", value: "0x13c", want: 0x13c},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "BTN_DOES_NOT_EXIST", wantErr: true},
		{name: "out of range", value: "70000", wantErr: true},
		{name: "negative", value: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseButton(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseButton(%q) expected error, got %d", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseButton(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("ParseButton(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestButtonNameRoundTrip(t *testing.T) {
	name := ButtonName(DefaultModeButton)
	if name != "BTN_MODE" {
		t.Fatalf("ButtonName(BTN_MODE) = %q", name)
	}
	code, err := ParseButton(name)
	if err != nil {
		t.Fatalf("ParseButton(%q) error = %v", name, err)
	}
	if code != DefaultModeButton {
		t.Fatalf("round trip = %d, want %d", code, DefaultModeButton)
	}
}
