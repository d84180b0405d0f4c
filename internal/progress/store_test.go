package progress

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tubegrab/tubegrab/internal/domain"
)

func TestStore_GetUnknownID(t *testing.T) {
	s := NewStore()

	rec := s.Get("never-seen")
	if rec.Status != domain.StatusUnknown {
		t.Errorf("Get(unknown id) status = %s, expected %s", rec.Status, domain.StatusUnknown)
	}
	if rec.Error != "" {
		t.Errorf("Get(unknown id) carried an error: %q", rec.Error)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	s := NewStore()

	s.Set("req-1", domain.ProgressRecord{Status: domain.StatusStarting})
	s.Set("req-1", domain.ProgressRecord{Status: domain.StatusDownloading, Progress: 42.5})

	rec := s.Get("req-1")
	if rec.Status != domain.StatusDownloading {
		t.Errorf("status = %s, expected %s", rec.Status, domain.StatusDownloading)
	}
	if rec.Progress != 42.5 {
		t.Errorf("progress = %v, expected 42.5", rec.Progress)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()

	s.Set("req-1", domain.ProgressRecord{Status: domain.StatusCompleted})
	s.Remove("req-1")

	if rec := s.Get("req-1"); rec.Status != domain.StatusUnknown {
		t.Errorf("status after remove = %s, expected %s", rec.Status, domain.StatusUnknown)
	}

	// Removing an absent id must be a no-op, not a panic
	s.Remove("req-1")
	s.Remove("never-seen")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("req-%d", n)
			for j := 0; j < 200; j++ {
				s.Set(id, domain.ProgressRecord{
					Status:   domain.StatusDownloading,
					Progress: float64(j) / 2,
				})
				_ = s.Get(id)
				_ = s.Get("req-0") // cross-session poll
			}
			s.Remove(id)
		}(i)
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Errorf("Len() after concurrent removes = %d, expected 0", s.Len())
	}
}
