package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tubegrab/tubegrab/internal/domain"
	"github.com/tubegrab/tubegrab/internal/infra/logger"
	"github.com/tubegrab/tubegrab/internal/progress"
	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

// Stage labels shown to polling clients, keyed to the session states.
const (
	stageStarting   = "Initializing..."
	stageDownload   = "Downloading from YouTube..."
	stageProcessing = "Merging Video & Audio (FFmpeg)..."
	stageSending    = "Sending to client..."
)

// Runner drives a download session through its states
// (starting -> downloading -> processing -> completed|error) by writing
// progress records, and owns the file handoff: locating the engine's output
// by temp-id prefix and disposing of it after the response is sent.
type Runner struct {
	store *progress.Store
	dir   string
	grace time.Duration
	log   *logger.Logger
}

func NewRunner(store *progress.Store, downloadDir string, grace time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		store: store,
		dir:   downloadDir,
		grace: grace,
		log:   log,
	}
}

// Begin registers the starting record before the engine is invoked.
func (r *Runner) Begin(requestID string) {
	r.store.Set(requestID, domain.ProgressRecord{
		Status: domain.StatusStarting,
		Stage:  stageStarting,
	})
}

// Sink builds the progress-event callback for one session. It runs inside
// the engine-reading goroutine at high frequency, so it only writes a map
// entry and returns.
func (r *Runner) Sink(requestID string) ytdlp.EventSink {
	return func(ev ytdlp.Event) {
		switch ev.Status {
		case ytdlp.EventDownloading:
			r.store.Set(requestID, domain.ProgressRecord{
				Status:   domain.StatusDownloading,
				Progress: ev.Percent(),
				Speed:    ev.SpeedStr,
				ETA:      ev.ETAStr,
				Stage:    stageDownload,
			})
		case ytdlp.EventFinished:
			// Transfer done; the external tool now remuxes/transcodes
			r.store.Set(requestID, domain.ProgressRecord{
				Status:   domain.StatusProcessing,
				Progress: 100,
				Stage:    stageProcessing,
				Speed:    "-",
				ETA:      "0s",
			})
		}
	}
}

// Fail records the terminal error state. The record is deliberately left in
// the store afterwards so a poller can observe what went wrong.
func (r *Runner) Fail(requestID string, err error) {
	r.store.Set(requestID, domain.ProgressRecord{
		Status: domain.StatusError,
		Error:  err.Error(),
	})
}

// Complete marks the session done just before the response starts streaming.
func (r *Runner) Complete(requestID string) {
	r.store.Set(requestID, domain.ProgressRecord{
		Status:   domain.StatusCompleted,
		Progress: 100,
		Stage:    stageSending,
	})
}

// LocateOutput finds the file the engine produced for tempID. The engine
// chooses the final extension, so the file is discovered rather than
// predicted. Zero matches is fatal for the session; multiple matches are not
// expected given temp-id uniqueness and resolve to the first entry in sorted
// directory order.
func (r *Runner) LocateOutput(tempID string) (string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), tempID) {
			return filepath.Join(r.dir, entry.Name()), nil
		}
	}

	return "", domain.ErrOutputNotFound
}

// ScheduleDisposal deletes the output file and evicts the progress record
// after a short grace delay, in the background. It is called once per
// successful handoff, after the response has been written (or has failed).
// Disposal failures are logged and never surfaced; a file already removed by
// the retention sweep counts as success.
func (r *Runner) ScheduleDisposal(requestID, path string) {
	go func() {
		time.Sleep(r.grace)

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.log.Error("Failed to remove %s: %v", path, err)
		} else {
			r.log.Debug("Removed %s", path)
		}

		r.store.Remove(requestID)
	}()
}
