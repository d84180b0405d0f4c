package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

type TargetKind string

const (
	TargetVideo TargetKind = "video"
	TargetAudio TargetKind = "audio"
)

// Target selects exactly one rendition shape for a session: a video download
// capped at a maximum height, or an audio-only download transcoded to mp3 at
// the requested bitrate. The values are passed opaquely to the extraction
// engine; stream selection happens there, not here.
type Target struct {
	Kind         TargetKind
	Height       int    // video mode, maximum height in pixels
	AudioQuality string // audio mode, e.g. "128k"
}

func VideoTarget(height int) Target {
	return Target{Kind: TargetVideo, Height: height}
}

func AudioTarget(quality string) Target {
	return Target{Kind: TargetAudio, AudioQuality: quality}
}

// DownloadName synthesizes the attachment filename sent to the client.
// It encodes the requested quality, not the source title.
func (t Target) DownloadName() string {
	if t.Kind == TargetAudio {
		return fmt.Sprintf("audio_%s.mp3", t.AudioQuality)
	}
	return fmt.Sprintf("video_%d.mp4", t.Height)
}

// Bitrate returns the numeric audio quality the transcoder expects ("128k" -> "128").
func (t Target) Bitrate() string {
	return strings.TrimSuffix(t.AudioQuality, "k")
}

// Session is the in-memory state for one download. It is never persisted;
// the request ID keys the progress store and TempID owns the on-disk
// filename namespace so concurrent sessions cannot collide.
type Session struct {
	RequestID string
	TempID    string
	URL       string
	Target    Target
}

func NewSession(requestID, url string, target Target) *Session {
	return &Session{
		RequestID: requestID,
		TempID:    NewTempID(),
		URL:       url,
		Target:    target,
	}
}

// OutputTemplate is the engine's output path template. The engine picks the
// final extension, which is why the produced file is later discovered by
// prefix scan rather than predicted.
func (s *Session) OutputTemplate(dir string) string {
	return filepath.Join(dir, s.TempID+".%(ext)s")
}
