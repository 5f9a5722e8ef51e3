package sysboard

import (
	"errors"
	"runtime"
	"testing"
)

func TestCommandSelection(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("helper selection is tested on linux")
	}

	tests := []struct {
		name      string
		installed map[string]bool
		want      string
	}{
		{"xclip preferred", map[string]bool{"xclip": true, "xsel": true}, "xclip"},
		{"xsel fallback", map[string]bool{"xsel": true}, "xsel"},
		{"none", map[string]bool{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.lookPath = func(name string) (string, error) {
				if tt.installed[name] {
					return "/usr/bin/" + name, nil
				}
				return "", errors.New("not found")
			}

			name, _, ok := s.command()
			if ok != (tt.want != "") || name != tt.want {
				t.Errorf("command() = %q, %v; want %q", name, ok, tt.want)
			}
		})
	}
}
