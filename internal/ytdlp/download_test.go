package ytdlp

import (
	"strings"
	"testing"

	"github.com/tubegrab/tubegrab/internal/domain"
)

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		target   domain.Target
		expected string
	}{
		{domain.VideoTarget(1080), "bestvideo[height<=1080]+bestaudio/best"},
		{domain.VideoTarget(480), "bestvideo[height<=480]+bestaudio/best"},
		{domain.AudioTarget("128k"), "bestaudio/best"},
		{domain.AudioTarget("320k"), "bestaudio/best"},
	}

	for _, test := range tests {
		if got := formatSelector(test.target); got != test.expected {
			t.Errorf("formatSelector(%+v) = %q, expected %q", test.target, got, test.expected)
		}
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"ERROR: unsupported URL", "ERROR: unsupported URL"},
		{"WARNING: something\nERROR: no video\n\n", "ERROR: no video"},
		{"", "no output"},
		{"\n  \n", "no output"},
	}

	for _, test := range tests {
		if got := lastLine(test.in); got != test.expected {
			t.Errorf("lastLine(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestClient_BaseArgs(t *testing.T) {
	c := NewClient("yt-dlp", 15e9)

	args := strings.Join(c.baseArgs(""), " ")
	if !strings.Contains(args, "--socket-timeout 15") {
		t.Errorf("baseArgs missing socket timeout: %q", args)
	}
	if strings.Contains(args, "--cookies") {
		t.Errorf("baseArgs included cookies with no file: %q", args)
	}

	args = strings.Join(c.baseArgs("/tmp/c.txt"), " ")
	if !strings.Contains(args, "--cookies /tmp/c.txt") {
		t.Errorf("baseArgs missing cookie file: %q", args)
	}
}
