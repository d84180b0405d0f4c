package ytdlp

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Client invokes the yt-dlp binary for metadata extraction and downloads.
// The binary owns stream selection, muxing and transcoding (via ffmpeg);
// this adapter only translates parameters and relays progress events.
type Client struct {
	binary        string
	socketTimeout time.Duration
}

func NewClient(binary string, socketTimeout time.Duration) *Client {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Client{
		binary:        binary,
		socketTimeout: socketTimeout,
	}
}

// Check verifies the extraction binary is resolvable in PATH.
func (c *Client) Check() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("required dependency: '%s' not found in PATH", c.binary)
	}
	return nil
}

// FFmpegAvailable reports whether the mux/transcode tool is on the host.
// Surfaced to clients so they can grey out options that need merging.
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// baseArgs are the flags shared by metadata and download invocations.
func (c *Client) baseArgs(cookieFile string) []string {
	args := []string{"--no-warnings"}

	if c.socketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(c.socketTimeout.Seconds())))
	}

	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}

	return args
}
