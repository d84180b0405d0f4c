package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Info is the subset of the engine's JSON dump this backend consumes.
type Info struct {
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Duration  float64  `json:"duration"`
	Uploader  string   `json:"uploader"`
	Formats   []Format `json:"formats"`
}

// Format is one rendition as reported by the engine. Missing numeric fields
// decode to zero, which the size-estimation fallbacks rely on.
type Format struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Height         int     `json:"height"`
	Vcodec         string  `json:"vcodec"`
	Acodec         string  `json:"acodec"`
	ABR            float64 `json:"abr"`
	VBR            float64 `json:"vbr"`
	TBR            float64 `json:"tbr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// IsVideo reports whether the format carries a video stream with a known
// height. Only an explicit vcodec of "none" disqualifies; a format with a
// height but no vcodec field still counts as video.
func (f Format) IsVideo() bool {
	return f.Height > 0 && f.Vcodec != "none"
}

// IsAudioOnly reports whether the format is an audio stream without video.
func (f Format) IsAudioOnly() bool {
	return f.Vcodec == "none" && f.Acodec != "none"
}

// ExtractInfo resolves a URL to its metadata without downloading anything.
func (c *Client) ExtractInfo(ctx context.Context, url, cookieFile string) (*Info, error) {
	args := append(c.baseArgs(cookieFile), "-J", url)

	cmd := exec.CommandContext(ctx, c.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("extraction failed: %w: %s", err, lastLine(stderr.String()))
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("failed to decode engine metadata: %w", err)
	}

	return &info, nil
}
