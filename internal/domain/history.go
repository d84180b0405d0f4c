package domain

import (
	"fmt"
	"time"
)

// DownloadRecord is the audit row written once a session reaches a terminal
// state. Unlike the in-memory progress record it survives restarts.
type DownloadRecord struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Kind        TargetKind `json:"kind"`
	Quality     string     `json:"quality"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt time.Time  `json:"completed_at"`
}

// QualityLabel renders the requested rendition for storage ("1080p" / "128k").
func (t Target) QualityLabel() string {
	if t.Kind == TargetAudio {
		return t.AudioQuality
	}
	return fmt.Sprintf("%dp", t.Height)
}
