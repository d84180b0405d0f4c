package retention

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tubegrab/tubegrab/internal/infra/logger"
)

// Sweeper periodically deletes files older than MaxAge from the download
// directory. It is a safety net independent of per-session disposal: a
// session that died before its own cleanup still gets reclaimed, bounded by
// the retention window. It never touches the progress store.
type Sweeper struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	log      *logger.Logger
}

func NewSweeper(dir string, interval, maxAge time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		dir:      dir,
		interval: interval,
		maxAge:   maxAge,
		log:      log,
	}
}

// Start runs the sweep loop until ctx is cancelled. Intended to be launched
// once at process start; whether it runs at all is a deployment choice.
func (s *Sweeper) Start(ctx context.Context) {
	s.log.Info("Retention sweeper started for %s (every %s, max age %s)", s.dir, s.interval, s.maxAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Retention sweeper stopped")
			return
		case now := <-ticker.C:
			s.runSweep(now)
		}
	}
}

// runSweep shields the loop from a panicking sweep; the next scheduled run
// still happens.
func (s *Sweeper) runSweep(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Sweep panicked: %v", r)
		}
	}()

	if deleted := s.Sweep(now); deleted > 0 {
		s.log.Info("Sweep reclaimed %d file(s) from %s", deleted, s.dir)
	}
}

// Sweep deletes every regular file whose modification time is older than the
// retention window relative to now, and returns how many were removed.
// Per-file failures are logged and skipped; a file that vanished between
// listing and deletion counts as already reclaimed.
func (s *Sweeper) Sweep(now time.Time) int {
	cutoff := now.Add(-s.maxAge)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("Sweep failed to read %s: %v", s.dir, err)
		return 0
	}

	deleted := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Raced a concurrent disposal between list and stat
			continue
		}

		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.log.Error("Sweep failed to delete %s: %v", path, err)
			}
			continue
		}

		s.log.Debug("Swept old file %s", path)
		deleted++
	}

	return deleted
}
