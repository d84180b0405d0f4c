package ytdlp

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Progress event status tags emitted by the engine.
const (
	EventDownloading = "downloading"
	EventFinished    = "finished"
)

// Event is one structured progress update from the engine, decoded from the
// JSON the engine prints per line when given the download progress template.
type Event struct {
	Status             string  `json:"status"`
	DownloadedBytes    float64 `json:"downloaded_bytes"`
	TotalBytes         float64 `json:"total_bytes"`
	TotalBytesEstimate float64 `json:"total_bytes_estimate"`
	SpeedStr           string  `json:"_speed_str"`
	ETAStr             string  `json:"_eta_str"`
}

// EventSink receives progress events. It is called synchronously from the
// engine-reading goroutine at high frequency and must not block.
type EventSink func(Event)

// Total returns the byte total to compute percentages against. Adaptive and
// streamed sources often report only an estimate, or nothing at all.
func (e Event) Total() float64 {
	if e.TotalBytes > 0 {
		return e.TotalBytes
	}
	return e.TotalBytesEstimate
}

// Percent computes downloaded/total*100, or 0 when the total is unknown.
// An unknown total is normal, not an error.
func (e Event) Percent() float64 {
	total := e.Total()
	if total <= 0 {
		return 0
	}
	return e.DownloadedBytes / total * 100
}

const progressPrefix = "download:"

// parseProgressLine decodes one engine output line into an Event. Lines that
// are not progress updates return ok=false and are skipped by the caller.
func parseProgressLine(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, progressPrefix) {
		return Event{}, false
	}

	var ev Event
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, progressPrefix)), &ev); err != nil {
		return Event{}, false
	}

	ev.SpeedStr = sanitize(ev.SpeedStr)
	ev.ETAStr = sanitize(ev.ETAStr)
	return ev, true
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// sanitize strips terminal escape sequences and control characters from
// engine-formatted strings; pollers render these values as plain text.
func sanitize(s string) string {
	s = ansiEscape.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
