package session

import "testing"

func TestActiveOnTTY(t *testing.T) {
	tests := []struct {
		name   string
		output string
		tty    string
		want   bool
	}{
		{
			name:   "empty output",
			output: "",
			tty:    "tty1",
			want:   false,
		},
		{
			name:   "user on guarded tty",
			output: "mason    tty1         2024-03-02 18:12\n",
			tty:    "tty1",
			want:   true,
		},
		{
			name:   "user on other tty",
			output: "mason    tty2         2024-03-02 18:12\n",
			tty:    "tty1",
			want:   false,
		},
		{
			name:   "greetd greeter does not count",
			output: "greetd   tty1         2024-03-02 18:10\n",
			tty:    "tty1",
			want:   false,
		},
		{
			name: "greeter plus real login",
			output: "greetd   tty1         2024-03-02 18:10\n" +
				"mason    tty1         2024-03-02 18:12\n",
			tty:  "tty1",
			want: true,
		},
		{
			name:   "pts session ignored",
			output: "mason    pts/0        2024-03-02 18:12 (192.168.1.4)\n",
			tty:    "tty1",
			want:   false,
		},
		{
			name:   "malformed line ignored",
			output: "garbage\n",
			tty:    "tty1",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := activeOnTTY(tt.output, tt.tty); got != tt.want {
				t.Fatalf("activeOnTTY(%q) = %v, want %v", tt.tty, got, tt.want)
			}
		})
	}
}

func TestNewTTYGuardNamesTTY(t *testing.T) {
	if g := NewTTYGuard(3); g.tty != "tty3" {
		t.Fatalf("tty = %q, want tty3", g.tty)
	}
}
