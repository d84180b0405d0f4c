package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tubegrab/tubegrab/internal/domain"
)

func newTestStore(t *testing.T) *PersistentStore {
	t.Helper()

	s, err := NewPersistentStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndListDownloads(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	records := []*domain.DownloadRecord{
		{
			ID:          "req-1",
			URL:         "https://example.com/a",
			Kind:        domain.TargetVideo,
			Quality:     "1080p",
			Status:      domain.StatusCompleted,
			Filename:    "video_1080.mp4",
			CreatedAt:   base,
			CompletedAt: base.Add(time.Minute),
		},
		{
			ID:          "req-2",
			URL:         "https://example.com/b",
			Kind:        domain.TargetAudio,
			Quality:     "128k",
			Status:      domain.StatusError,
			Error:       "extraction failed: unsupported URL",
			CreatedAt:   base.Add(10 * time.Minute),
			CompletedAt: base.Add(11 * time.Minute),
		},
	}

	for _, rec := range records {
		if err := s.SaveDownload(rec); err != nil {
			t.Fatalf("SaveDownload(%s): %v", rec.ID, err)
		}
	}

	got, err := s.RecentDownloads(10)
	if err != nil {
		t.Fatalf("RecentDownloads: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, expected 2", len(got))
	}

	// Newest first
	if got[0].ID != "req-2" || got[1].ID != "req-1" {
		t.Errorf("order = %s, %s; expected req-2, req-1", got[0].ID, got[1].ID)
	}

	if got[0].Status != domain.StatusError || got[0].Error == "" {
		t.Errorf("error record round-trip lost data: %+v", got[0])
	}
	if got[1].Kind != domain.TargetVideo || got[1].Quality != "1080p" {
		t.Errorf("video record round-trip lost data: %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Errorf("created_at = %s, expected %s", got[1].CreatedAt, base)
	}
}

func TestSaveDownload_ReplacesExistingID(t *testing.T) {
	s := newTestStore(t)

	rec := &domain.DownloadRecord{
		ID:          "req-1",
		URL:         "https://example.com/a",
		Kind:        domain.TargetVideo,
		Quality:     "720p",
		Status:      domain.StatusError,
		Error:       "network error",
		CreatedAt:   time.Now(),
		CompletedAt: time.Now(),
	}
	if err := s.SaveDownload(rec); err != nil {
		t.Fatal(err)
	}

	rec.Status = domain.StatusCompleted
	rec.Error = ""
	rec.Filename = "video_720.mp4"
	if err := s.SaveDownload(rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.RecentDownloads(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, expected 1 after upsert", len(got))
	}
	if got[0].Status != domain.StatusCompleted || got[0].Error != "" {
		t.Errorf("upsert did not replace row: %+v", got[0])
	}
}

func TestRecentDownloads_Limit(t *testing.T) {
	s := newTestStore(t)

	now := time.Now()
	for i := 0; i < 5; i++ {
		rec := &domain.DownloadRecord{
			ID:          domain.NewRequestID(),
			URL:         "https://example.com/v",
			Kind:        domain.TargetVideo,
			Quality:     "480p",
			Status:      domain.StatusCompleted,
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
			CompletedAt: now.Add(time.Duration(i+1) * time.Second),
		}
		if err := s.SaveDownload(rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentDownloads(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("got %d records, expected limit of 3", len(got))
	}
}
