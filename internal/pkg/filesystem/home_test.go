package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/.clio/guardrail.yaml", want: filepath.Join(home, ".clio", "guardrail.yaml")},
		{in: "/etc/clio.yaml", want: "/etc/clio.yaml"},
		{in: "a/../b/c.yaml", want: filepath.Join("b", "c.yaml")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := ClioDir(); got != filepath.Join(home, ".clio") {
		t.Errorf("ClioDir() = %q", got)
	}
}
