package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde prefix", input: "~/data/caixinha.db", want: filepath.Join(home, "data", "caixinha.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "plain path", input: "/var/lib/caixinha.db", want: "/var/lib/caixinha.db"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPath_EnvVar(t *testing.T) {
	t.Setenv("CAIXINHA_TEST_DIR", "/tmp/caixinha")
	got := ExpandPath("$CAIXINHA_TEST_DIR/data.db")
	if got != "/tmp/caixinha/data.db" {
		t.Errorf("ExpandPath() = %q", got)
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	got := DefaultDatabasePath()
	if !strings.HasSuffix(got, "caixinha.db") {
		t.Errorf("DefaultDatabasePath() = %q", got)
	}
}
