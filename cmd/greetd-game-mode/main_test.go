package main

import (
	"log/slog"
	"testing"
)

func TestParseModeButtons(t *testing.T) {
	codes, err := parseModeButtons([]string{"BTN_MODE", "KEY_MENU", "0x133"})
	if err != nil {
		t.Fatalf("parseModeButtons() error = %v", err)
	}
	want := []uint16{0x13c, 0x8b, 0x133}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes[%d] = %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestParseModeButtonsRejectsUnknown(t *testing.T) {
	if _, err := parseModeButtons([]string{"BTN_BOGUS"}); err == nil {
		t.Fatalf("expected error for unknown button name")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		value   string
		want    slog.Level
		wantErr bool
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: "INFO", want: slog.LevelInfo},
		{value: "warn", want: slog.LevelWarn},
		{value: "warning", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseLogLevel(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("parseLogLevel(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
