package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tubegrab/tubegrab/internal/domain"
)

// Request describes one download invocation. OutputTemplate carries the
// session's temp-id stem; the engine substitutes the final extension.
type Request struct {
	URL            string
	OutputTemplate string
	CookieFile     string
	Target         domain.Target
}

// Download runs the engine until the produced file is fully written and
// post-processed, relaying progress events to sink as they arrive. The call
// blocks for the whole transfer; the caller decides how it is scheduled.
func (c *Client) Download(ctx context.Context, req Request, sink EventSink) error {
	args := append(c.baseArgs(req.CookieFile),
		"-f", formatSelector(req.Target),
		"-o", req.OutputTemplate,
		"--newline",
		"--progress-template", "download:%(progress)j",
	)

	if req.Target.Kind == domain.TargetAudio {
		args = append(args,
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", req.Target.Bitrate(),
		)
	} else {
		args = append(args, "--merge-output-format", "mp4")
	}

	args = append(args, req.URL)

	cmd := exec.CommandContext(ctx, c.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach to engine output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ev, ok := parseProgressLine(scanner.Text()); ok && sink != nil {
			sink(ev)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("download failed: %w: %s", err, lastLine(stderr.String()))
	}

	return nil
}

// formatSelector builds the engine's stream selection expression for the
// requested rendition. Video mode asks for the best stream not exceeding the
// height plus the best matching audio, merged into one container.
func formatSelector(t domain.Target) string {
	if t.Kind == domain.TargetAudio {
		return "bestaudio/best"
	}
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best", t.Height)
}

// lastLine extracts the final non-empty line of engine stderr, which is
// where yt-dlp reports its actual failure reason.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return "no output"
}
